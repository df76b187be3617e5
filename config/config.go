package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort              = "8080"
	DefaultRedisTTL          = 24 * time.Hour
	DefaultSimulationLatency = time.Second
	DefaultRateLimitCapacity = 30
	DefaultRateLimitWindow   = time.Minute
	DefaultOpenAIURL         = "https://api.openai.com/v1/chat/completions"
)

type Config struct {
	Port              string
	Env               string
	RedisAddr         string
	RedisTTL          time.Duration
	DatabaseURL       string
	SimulationLatency time.Duration
	StrictValidation  bool
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	OpenAIKey         string
	OpenAIURL         string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        orDefault(getenv("PORT"), DefaultPort),
		Env:         getenv("HOLDING_ENV"),
		RedisAddr:   getenv("REDIS_ADDR"),
		DatabaseURL: getenv("DATABASE_URL"),
		OpenAIKey:   getenv("OPENAI_API_KEY"),
		OpenAIURL:   orDefault(getenv("OPENAI_API_URL"), DefaultOpenAIURL),
	}

	var err error
	if cfg.RedisTTL, err = durationOr(getenv, "REDIS_TTL", DefaultRedisTTL); err != nil {
		return Config{}, err
	}
	if cfg.SimulationLatency, err = durationOr(getenv, "HOLDING_SIMULATION_LATENCY", DefaultSimulationLatency); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitWindow, err = durationOr(getenv, "RATE_LIMIT_WINDOW", DefaultRateLimitWindow); err != nil {
		return Config{}, err
	}

	if v := getenv("HOLDING_STRICT_VALIDATION"); v != "" {
		cfg.StrictValidation, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HOLDING_STRICT_VALIDATION %q: %w", v, err)
		}
	}

	cfg.RateLimitCapacity = DefaultRateLimitCapacity
	if v := getenv("RATE_LIMIT_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_CAPACITY %q", v)
		}
		cfg.RateLimitCapacity = n
	}

	if cfg.SimulationLatency < 0 {
		return Config{}, fmt.Errorf("HOLDING_SIMULATION_LATENCY must not be negative")
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func durationOr(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
