package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// loginRateCounter is the slice of the redis API the login limiter needs.
type loginRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// incrWithTTL increments a counter key and arms its expiry on first use, so
// hourly login buckets clean themselves up.
func incrWithTTL(ctx context.Context, counter loginRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := counter.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = counter.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
