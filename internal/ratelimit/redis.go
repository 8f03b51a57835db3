package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient dials lazily; the first command (or a readiness ping) connects.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Redis counts requests in fixed windows so several API processes share one budget.
type Redis struct {
	rdb    redis.Cmdable
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedis(rdb redis.Cmdable, prefix string, limit int, window time.Duration) *Redis {
	if prefix == "" {
		prefix = "restaurantos:ratelimit"
	}
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Redis{rdb: rdb, prefix: prefix, limit: limit, window: window, now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (Result, error) {
	now := r.now()
	slot := now.UnixNano() / int64(r.window)
	windowEnd := time.Unix(0, (slot+1)*int64(r.window))

	redisKey := r.prefix + ":" + key + ":" + strconv.FormatInt(slot, 10)

	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireAt(ctx, redisKey, windowEnd.Add(time.Second))
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("rate limit incr: %w", err)
	}

	if incr.Val() > int64(r.limit) {
		return Result{Allowed: false, RetryAfter: windowEnd.Sub(now)}, nil
	}
	return Result{Allowed: true}, nil
}
