// ========================================
// internal/middleware/auth.go
// Admin surface authentication: a single shared x-api-key header gates the
// whole admin API, per the operator/moderator trust model (no per-admin
// accounts).

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth rejects requests missing x-api-key with 401 and requests
// carrying the wrong one with 403
func APIKeyAuth(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Allow health check without a key
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		got := c.GetHeader("x-api-key")
		if got == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "x-api-key header is required"})
			c.Abort()
			return
		}
		if got != expected {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid api key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
