package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter is a fixed-window counter backed by Redis. It fails open: if Redis
// is unreachable the request goes through rather than blocking logins on a
// cache outage.
type Limiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	logger *zap.Logger
}

func New(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{rdb: rdb, limit: int64(limit), window: window, logger: logger}
}

// Allow reports whether the caller identified by key is still inside its
// window budget.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	k := fmt.Sprintf("ratelimit:%s", key)

	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		l.logger.Warn("Rate limiter unavailable, allowing request", zap.Error(err))
		return true
	}
	if n == 1 {
		l.rdb.Expire(ctx, k, l.window)
	}
	return n <= l.limit
}
