package repository

import "context"

// CacheRepository stores serialized simulation results by key.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
