package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter is a fixed-window limiter shared by every API instance
// through Redis.
type RateLimiter struct {
	incr   func(ctx context.Context, key string) (int64, error)
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *RateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "rl"
	}

	rl := &RateLimiter{limit: limit, window: window, prefix: prefix}
	rl.incr = func(ctx context.Context, key string) (int64, error) {
		res, err := fixedWindowScript.Run(ctx, rdb, []string{key}, rl.window.Milliseconds()).Result()
		if err != nil {
			return 0, err
		}
		switch v := res.(type) {
		case int64:
			return v, nil
		case string:
			return strconv.ParseInt(v, 10, 64)
		}
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
	return rl
}

// Middleware limits by client IP. Redis errors let the request through.
func (rl *RateLimiter) Middleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.prefix + ":" + c.ClientIP()

		count, err := rl.incr(c.Request.Context(), key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, failing open")
			c.Next()
			return
		}

		if count > int64(rl.limit) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests.")
			c.Abort()
			return
		}

		c.Next()
	}
}
