package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

const EnvVar = "HOLDING_ENV"

type ctxKey struct{}

// New builds a sugared logger. HOLDING_ENV=dev selects the human readable
// development config, anything else the JSON production config.
func New() *zap.SugaredLogger {
	return NewForEnv(os.Getenv(EnvVar))
}

func NewForEnv(env string) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	if strings.EqualFold(env, "dev") {
		logger, err = zap.NewDevelopment(opts...)
	} else {
		opts = append(opts, zap.Fields(zap.String(EnvVar, env)))
		logger, err = zap.NewProduction(opts...)
	}

	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

// WithContext stores lg in ctx.
func WithContext(ctx context.Context, lg *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, lg)
}

// FromContext returns the logger stored in ctx, or the global logger when
// there is none.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if lg, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && lg != nil {
			return lg
		}
	}
	return zap.S()
}
