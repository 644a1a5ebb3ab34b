// Package seed fills the todos table with random development data.
package seed

import (
	"fmt"
	"math/rand"
	"strings"

	"todoview-api/internal/models"

	"gorm.io/gorm"
)

// DefaultCount is the number of todos the seeder creates when no count is given
const DefaultCount = 20

var words = []string{
	"buy", "groceries", "write", "report", "call", "dentist", "review",
	"pull", "request", "plan", "weekend", "trip", "clean", "kitchen",
	"water", "plants", "renew", "insurance", "schedule", "meeting",
	"fix", "leaking", "tap", "read", "chapter", "book", "prepare",
	"slides", "answer", "emails", "update", "dependencies",
}

var statuses = []models.Status{models.StatusActive, models.StatusCompleted}

// RandomTodo builds a todo with random short text and a random status
func RandomTodo() models.Todo {
	return models.Todo{
		Text:   randomText(),
		Status: statuses[rand.Intn(len(statuses))],
	}
}

// Todos creates n random todos in the database and returns them
func Todos(db *gorm.DB, n int) ([]models.Todo, error) {
	if n <= 0 {
		n = DefaultCount
	}

	todos := make([]models.Todo, n)
	for i := range todos {
		todos[i] = RandomTodo()
	}

	if err := db.Create(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to seed todos: %w", err)
	}
	return todos, nil
}

// randomText joins 2-5 random words, capped at the column size
func randomText() string {
	n := 2 + rand.Intn(4)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rand.Intn(len(words))]
	}

	text := strings.Join(parts, " ")
	if len(text) > 255 {
		text = text[:255]
	}
	return text
}
