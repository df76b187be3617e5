package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv(env(nil))
		require.NoError(t, err)

		require.Equal(t, DefaultPort, cfg.Port)
		require.Equal(t, DefaultSimulationLatency, cfg.SimulationLatency)
		require.Equal(t, DefaultRedisTTL, cfg.RedisTTL)
		require.Equal(t, DefaultRateLimitCapacity, cfg.RateLimitCapacity)
		require.Equal(t, DefaultOpenAIURL, cfg.OpenAIURL)
		require.False(t, cfg.StrictValidation)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := FromEnv(env(map[string]string{
			"PORT":                       "9090",
			"HOLDING_SIMULATION_LATENCY": "0s",
			"HOLDING_STRICT_VALIDATION":  "true",
			"RATE_LIMIT_CAPACITY":        "5",
			"RATE_LIMIT_WINDOW":          "30s",
			"REDIS_ADDR":                 "localhost:6379",
		}))
		require.NoError(t, err)

		require.Equal(t, "9090", cfg.Port)
		require.Equal(t, time.Duration(0), cfg.SimulationLatency)
		require.True(t, cfg.StrictValidation)
		require.Equal(t, 5, cfg.RateLimitCapacity)
		require.Equal(t, 30*time.Second, cfg.RateLimitWindow)
		require.Equal(t, "localhost:6379", cfg.RedisAddr)
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, m := range []map[string]string{
			{"HOLDING_SIMULATION_LATENCY": "soon"},
			{"HOLDING_SIMULATION_LATENCY": "-1s"},
			{"HOLDING_STRICT_VALIDATION": "maybe"},
			{"RATE_LIMIT_CAPACITY": "0"},
			{"REDIS_TTL": "forever"},
		} {
			_, err := FromEnv(env(m))
			require.Error(t, err, m)
		}
	})
}
