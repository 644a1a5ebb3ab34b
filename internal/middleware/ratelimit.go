package middleware

import (
	"net/http"
	"strconv"
	"time"

	"todoview-api/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int64
}

// NewRateLimitConfigFromEnv creates rate limit config from environment variables
func NewRateLimitConfigFromEnv() *RateLimitConfig {
	requestsPerMin, _ := strconv.ParseInt(getEnv("RATE_LIMIT_REQUESTS_PER_MIN", "120"), 10, 64)

	return &RateLimitConfig{
		Enabled:        getEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerMin: requestsPerMin,
	}
}

// GlobalRateLimiter limits requests per client IP across all routes
func GlobalRateLimiter(config *RateLimitConfig) gin.HandlerFunc {
	if !config.Enabled {
		logging.Logger.Info("Rate limiting is disabled")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  config.RequestsPerMin,
	}

	instance := limiter.New(memory.NewStore(), rate)

	middleware := mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		logging.Logger.WithFields(map[string]interface{}{
			"client_ip":     c.ClientIP(),
			"path":          c.Request.URL.Path,
			"method":        c.Request.Method,
			"limit_per_min": config.RequestsPerMin,
		}).Warn("Rate limit exceeded")

		c.JSON(http.StatusTooManyRequests, gin.H{
			"code":       "RATE_LIMIT_EXCEEDED",
			"message":    "Too many requests. Please try again later.",
			"retryAfter": int(rate.Period.Seconds()),
		})
		c.Abort()
	}))

	logging.Logger.Infof("Rate limiting enabled: %d requests per minute", config.RequestsPerMin)
	return middleware
}
