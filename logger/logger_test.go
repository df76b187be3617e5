package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		lg := zap.NewNop().Sugar()
		ctx := WithContext(context.Background(), lg)

		require.Same(t, lg, FromContext(ctx))
	})

	t.Run("falls back to global logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}

func TestNewForEnv(t *testing.T) {
	require.NotNil(t, NewForEnv("dev"))
	require.NotNil(t, NewForEnv("prod"))
}
