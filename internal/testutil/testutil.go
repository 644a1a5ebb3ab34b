package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todoview-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The schema is created by hand for SQLite compatibility: the production
// migrations rely on PostgreSQL UUID functions.
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	err = db.Exec(`CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`).Error
	require.NoError(t, err, "Failed to create todos table")

	db.Exec(`CREATE INDEX idx_todos_status ON todos(status)`)
	db.Exec(`CREATE INDEX idx_todos_created_at ON todos(created_at)`)
	db.Exec(`CREATE INDEX idx_todos_deleted_at ON todos(deleted_at)`)

	return db
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	sqlDB, err := db.DB()
	require.NoError(t, err)
	err = sqlDB.Close()
	require.NoError(t, err)
}

// NewTodo creates an unsaved Todo with the given text and status
func NewTodo(text string, status models.Status) *models.Todo {
	now := time.Now()
	return &models.Todo{
		ID:        uuid.New(),
		Text:      text,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MakeJSONRequest creates an HTTP request with JSON body
func MakeJSONRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var bodyReader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		bodyReader = bytes.NewReader(jsonBody)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ParseJSONResponse parses a JSON response into a target structure
func ParseJSONResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	err := json.Unmarshal(w.Body.Bytes(), target)
	require.NoError(t, err, "Failed to parse JSON response")
}
