package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quillpress/core/internal/pkg/redis"
	"github.com/quillpress/core/internal/pkg/response"
	"go.uber.org/zap"
)

const rateLimitPerSecond = 20

// RateLimit caps unauthenticated requests per client IP per second using a
// redis counter. Authenticated requests pass through. A nil client disables
// limiting, and redis failures fail open.
func RateLimit(rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) || rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix())
		ctx := c.Request.Context()

		count, err := rdb.Raw().Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Raw().Expire(ctx, key, 2*time.Second)
		}

		if count > rateLimitPerSecond {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
