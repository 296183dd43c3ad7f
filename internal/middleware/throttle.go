package middleware

import (
	"github.com/prafuldivani/quiz-app/internal/ratelimit"
	"github.com/prafuldivani/quiz-app/internal/util"
	"github.com/prafuldivani/quiz-app/pkg/logger"
	"github.com/prafuldivani/quiz-app/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitThrottle gates the public submission endpoint with the injected
// limiter, keyed by client address. A limiter error is logged and the
// request let through; the limiter already failed open.
func SubmitThrottle(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Log.Warn("rate limiter error", zap.Error(err))
		}
		if !ok {
			monitoring.SubmissionsThrottled.Inc()
			util.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
