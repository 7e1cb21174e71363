package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/config"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "ai:memo:"

// Redis is a Cache shared between instances. Expiry is left to Redis.
type Redis struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedis connects and pings the server.
func NewRedis(cfg config.RedisConfig, ttl time.Duration) (*Redis, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Redis cache connected", "addr", cfg.Addr)

	return &Redis{rdb: rdb, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, keyPrefix+key, value, r.ttl).Err()
}

func (r *Redis) Purge(_ context.Context) (int, error) {
	return 0, nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
