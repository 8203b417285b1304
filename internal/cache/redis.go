package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pedroShimpa/chessdb-api/internal/logger"
)

type Redis struct {
	rdb *goredis.Client
	ttl time.Duration
	log *logger.Logger
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, opts RedisOptions, baseLog *logger.Logger) (*Redis, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{rdb: rdb, ttl: opts.TTL, log: baseLog.With("cache", "Redis")}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		r.log.Warn("cache read failed", "key", key, "error", err)
		return nil, false, err
	}
	return raw, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, key, value, r.ttl).Err(); err != nil {
		r.log.Warn("cache write failed", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
