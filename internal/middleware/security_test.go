package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"todoview-api/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var setupOnce sync.Once

func setupTest() {
	setupOnce.Do(func() {
		// Initialize logger for tests
		logging.InitLogger(&logging.LogConfig{
			Enabled:    false,
			Level:      "info",
			JSONFormat: false,
		})
		gin.SetMode(gin.TestMode)
	})
}

func TestSecurityHeaders(t *testing.T) {
	setupTest()
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "", w.Header().Get("X-Powered-By"))
	assert.Equal(t, "", w.Header().Get("Server"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestRequestSizeLimit(t *testing.T) {
	setupTest()
	maxSize := int64(100) // 100 bytes

	t.Run("allows requests under limit", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestSizeLimit(maxSize))
		router.POST("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		body := strings.NewReader(`{"text":"water plants"}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestSizeLimit(maxSize))
		router.POST("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		largeBody := strings.Repeat("a", 200)
		req := httptest.NewRequest("POST", "/test", strings.NewReader(largeBody))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = int64(len(largeBody))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
	})
}

func TestUUIDValidator(t *testing.T) {
	setupTest()
	t.Run("accepts valid UUID", func(t *testing.T) {
		router := gin.New()
		router.GET("/todos/:todoId", UUIDValidator("todoId"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"todoId": c.Param("todoId")})
		})

		req := httptest.NewRequest("GET", "/todos/550e8400-e29b-41d4-a716-446655440000", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects invalid UUID", func(t *testing.T) {
		router := gin.New()
		router.GET("/todos/:todoId", UUIDValidator("todoId"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"todoId": c.Param("todoId")})
		})

		tests := []string{
			"not-a-uuid",
			"550e8400-e29b-41d4-a716",
			"550e8400-e29b-41d4-a716-44665544zzzz",
		}

		for _, value := range tests {
			req := httptest.NewRequest("GET", "/todos/"+value, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_UUID")
		}
	})

	t.Run("skips missing parameters", func(t *testing.T) {
		router := gin.New()
		router.GET("/todos", UUIDValidator("todoId"), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		req := httptest.NewRequest("GET", "/todos", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestErrorSanitizer(t *testing.T) {
	setupTest()
	t.Run("writes a generic 5xx body when the handler wrote none", func(t *testing.T) {
		router := gin.New()
		router.Use(ErrorSanitizer())
		router.GET("/test", func(c *gin.Context) {
			c.Error(assert.AnError)
			c.Status(http.StatusInternalServerError)
		})

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	})

	t.Run("leaves 4xx responses untouched", func(t *testing.T) {
		router := gin.New()
		router.Use(ErrorSanitizer())
		router.GET("/test", func(c *gin.Context) {
			c.Error(assert.AnError)
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation error"})
		})

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation error")
	})
}

func TestNewSecurityConfigFromEnv(t *testing.T) {
	setupTest()
	t.Run("uses defaults", func(t *testing.T) {
		config := NewSecurityConfigFromEnv()
		assert.Equal(t, int64(1048576), config.MaxRequestBodySize)
		assert.Nil(t, config.TrustedProxies)
	})

	t.Run("reads overrides from environment", func(t *testing.T) {
		t.Setenv("MAX_REQUEST_BODY_SIZE", "2048")
		t.Setenv("TRUSTED_PROXIES", "192.168.1.1, 10.0.0.1")

		config := NewSecurityConfigFromEnv()
		assert.Equal(t, int64(2048), config.MaxRequestBodySize)
		assert.Equal(t, []string{"192.168.1.1", "10.0.0.1"}, config.TrustedProxies)
	})
}
