package repository

import (
	"CommunityReportAPI/internal/adapter"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRepository implements a fixed-window counter per key in Redis.
type RateLimitRepository struct {
	redisAdapter *adapter.RedisAdapter
}

func NewRateLimitRepository(redisAdapter *adapter.RedisAdapter) *RateLimitRepository {
	return &RateLimitRepository{
		redisAdapter: redisAdapter,
	}
}

func (r *RateLimitRepository) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	client := r.redisAdapter.Client()

	var incr *redis.IntCmd
	var ttlCmd *redis.DurationCmd
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttlCmd = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	ttl := ttlCmd.Val()
	if ttl < 0 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, err
		}
		ttl = window
	}

	if incr.Val() > int64(limit) {
		return false, ttl, nil
	}

	return true, ttl, nil
}
