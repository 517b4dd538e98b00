package auth

import (
	"net/http"
	"time"

	"notes-platform/pkg/logger"
	"notes-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts per client IP with a redis
// fixed-window counter. It sits in front of the login route; the
// authentication service itself never rate-limits.
//
// The limiter is advisory: if redis is unreachable the attempt is allowed
// rather than locking every user out.
func LoginLimiter(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "login_attempts:" + c.ClientIP()

		ok, err := utils.AllowFixedWindow(c.Request.Context(), rdb, key, limit, window)
		if err != nil {
			logger.FromGin(c).Warn("login limiter unavailable", "err", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many login attempts, please try again later",
			})
			return
		}
		c.Next()
	}
}
