package middleware

import (
	"net/http"

	"todoview-api/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SecurityConfig holds security middleware configuration
type SecurityConfig struct {
	MaxRequestBodySize int64    // Maximum request body size in bytes
	TrustedProxies     []string // List of trusted proxy IPs
}

// NewSecurityConfigFromEnv creates security config from environment variables
func NewSecurityConfigFromEnv() *SecurityConfig {
	return &SecurityConfig{
		MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_SIZE", 1048576)), // 1MB
		TrustedProxies:     parseCommaSeparated(getEnv("TRUSTED_PROXIES", "")),
	}
}

// SecurityHeaders adds security-related HTTP headers
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("X-Powered-By", "")
		c.Header("Server", "")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")

		c.Next()
	}
}

// RequestSizeLimit limits the size of incoming request bodies
func RequestSizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			logging.Logger.WithFields(map[string]interface{}{
				"client_ip":      c.ClientIP(),
				"content_length": c.Request.ContentLength,
				"max_size":       maxSize,
			}).Warn("Request body too large")

			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"code":    "REQUEST_TOO_LARGE",
				"message": "Request body too large",
			})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// ErrorSanitizer logs request errors and makes sure 5xx responses never leak
// internal details to the client
func ErrorSanitizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		logging.Logger.WithFields(map[string]interface{}{
			"client_ip": c.ClientIP(),
			"path":      c.Request.URL.Path,
			"method":    c.Request.Method,
			"error":     c.Errors.Last().Error(),
		}).Error("Request error")

		if c.Writer.Status() >= 500 && !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "An internal error occurred. Please try again later.",
			})
		}
	}
}

// UUIDValidator rejects requests whose named path parameters are not valid
// UUIDs before they reach a handler
func UUIDValidator(params ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, param := range params {
			value := c.Param(param)
			if value == "" {
				continue
			}
			if _, err := uuid.Parse(value); err != nil {
				logging.Logger.WithFields(map[string]interface{}{
					"client_ip": c.ClientIP(),
					"path":      c.Request.URL.Path,
					"param":     param,
					"value":     value,
				}).Warn("Invalid UUID format")

				c.JSON(http.StatusBadRequest, gin.H{
					"code":    "INVALID_UUID",
					"message": "Invalid UUID format",
					"field":   param,
				})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
