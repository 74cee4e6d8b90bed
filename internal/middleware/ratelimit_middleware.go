// internal/middleware/ratelimit_middleware.go
package middleware

import (
	"math"
	"net/http"
	"strconv"

	"realty-service/internal/pkg/ratelimit"
	"realty-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit applies rule per client IP. When the limiter backend is down the
// request is let through and the failure logged.
func RateLimit(limiter ratelimit.Limiter, rule ratelimit.Rule, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), rule.Key(c.ClientIP()), rule.Limit, rule.Window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("scope", rule.Scope), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			response.Error(c, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		c.Next()
	}
}
