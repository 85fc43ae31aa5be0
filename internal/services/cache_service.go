package services

import (
	"context"
	"time"
)

// CacheService is the key/value store behind the dashboard cache and the OTP
// codes. pkg/cache.RedisCache implements it.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
	GetTTL(ctx context.Context, key string) (time.Duration, error)
	DeletePattern(ctx context.Context, pattern string) error
}
