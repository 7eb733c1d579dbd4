package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisOptions are the connection settings shared by the cache and the asynq client.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// RedisClient wraps the go-redis client used by the doctor and patient read-through cache.
type RedisClient struct {
	Client *redis.Client
	opts   RedisOptions
}

func NewRedisClient(opts RedisOptions) *RedisClient {
	if opts.PoolSize <= 0 {
		opts.PoolSize = 10
	}
	return &RedisClient{
		opts: opts,
		Client: redis.NewClient(&redis.Options{
			Addr:         opts.Addr,
			Password:     opts.Password,
			DB:           opts.DB,
			PoolSize:     opts.PoolSize,
			MinIdleConns: opts.PoolSize / 2,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// Options returns the settings the client was built with.
func (r *RedisClient) Options() RedisOptions {
	return r.opts
}

// Connect pings Redis once so a bad address fails at startup.
func (r *RedisClient) Connect(ctx context.Context) error {
	log.Info().Str("addr", r.opts.Addr).Int("db", r.opts.DB).Msg("connecting to redis")

	if err := r.ping(ctx); err != nil {
		return err
	}

	log.Info().Msg("redis connected")
	return nil
}

func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return r.ping(ctx)
}

func (r *RedisClient) ping(ctx context.Context) error {
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", r.opts.Addr, err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
