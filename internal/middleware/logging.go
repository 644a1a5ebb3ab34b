package middleware

import (
	"time"

	"todoview-api/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every HTTP request with structured fields
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		logEntry := logging.Logger.WithFields(logrus.Fields{
			"client_ip": c.ClientIP(),
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"query":     c.Request.URL.RawQuery,
		})

		if userAgent := c.GetHeader("User-Agent"); userAgent != "" {
			logEntry = logEntry.WithField("user_agent", userAgent)
		}

		c.Next()

		statusCode := c.Writer.Status()
		logEntry = logEntry.WithFields(logrus.Fields{
			"status":        statusCode,
			"latency_ms":    time.Since(startTime).Milliseconds(),
			"response_size": c.Writer.Size(),
		})

		if len(c.Errors) > 0 {
			logEntry = logEntry.WithField("errors", c.Errors.String())
		}

		switch {
		case statusCode >= 500:
			logEntry.Error("Request failed")
		case statusCode >= 400:
			logEntry.Warn("Request rejected")
		default:
			logEntry.Info("Request completed")
		}
	}
}
