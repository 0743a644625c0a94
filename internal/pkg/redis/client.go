package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	client *redis.Client
	log    *zap.Logger
)

// Init initializes the Redis client
func Init(ctx context.Context, cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisService.Password,
		DB:       cfg.RedisService.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client = nil
		return err
	}

	log = zap.L().With(zap.String("component", "redis"))
	log.Info("Redis connected successfully",
		zap.String("addr", cfg.GetRedisAddr()))

	return nil
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// GetBytes returns the value stored at key. A missing key yields (nil, false, nil).
func GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if client == nil {
		return nil, false, fmt.Errorf("redis client not initialized")
	}

	val, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// SetBytes stores a value with expiration
func SetBytes(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return client.Set(ctx, key, value, expiration).Err()
}

// AssetStore exposes the Redis client as the shared tier of the asset cache,
// so every web-api replica fetches the logo and cover photo only once.
type AssetStore struct {
	Prefix string
}

func (s AssetStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return GetBytes(ctx, s.Prefix+key)
}

func (s AssetStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return SetBytes(ctx, s.Prefix+key, value, ttl)
}
