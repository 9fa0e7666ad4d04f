package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit enforces a per-client-IP rate limit on the routes it is attached
// to. When the store is unavailable the request is rejected rather than let
// through unmetered.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiterCtx, err := limiterInstance.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Rate limiter store failure", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if limiterCtx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
