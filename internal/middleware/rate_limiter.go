// ========================================
// internal/middleware/rate_limiter.go
// Rate limiting to prevent abuse of the admin surface

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"trackday-server/internal/counterstore"

	"github.com/gin-gonic/gin"
)

// RateLimiter implements a sliding-window rate limit keyed by caller IP,
// backed by the same counter store the ranking engine uses
func RateLimiter(store *counterstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:ip:%s", c.ClientIP())

		limit := 100
		window := time.Minute

		count, err := store.IncrWithExpire(c.Request.Context(), key, window)
		if err != nil {
			// Don't block admin calls on rate-limiter errors
			c.Next()
			return
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", limit-int(count)))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

		c.Next()
	}
}
