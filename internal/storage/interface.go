package storage

import (
	"todoview-api/internal/models"

	"github.com/google/uuid"
)

// Store defines the persistence boundary the view controller depends on
type Store interface {
	// CreateTodo creates a todo with the given text; status defaults to active
	CreateTodo(text string) (*models.Todo, error)

	// UpdateText updates a todo's text only, leaving its status untouched
	UpdateText(id uuid.UUID, text string) error

	// UpdateStatus sets a todo's status
	UpdateStatus(id uuid.UUID, status models.Status) error

	// UpdateStatusWhereNot sets the status of every listed todo whose current
	// status differs from desired, and returns how many rows changed. The
	// not-equal filter keeps the bulk toggle idempotent and avoids redundant
	// writes.
	UpdateStatusWhereNot(ids []uuid.UUID, desired models.Status) (int64, error)

	// DeleteTodo deletes a todo by id
	DeleteTodo(id uuid.UUID) error

	// DeleteTodos deletes every listed todo; ids no longer present are ignored
	DeleteTodos(ids []uuid.UUID) error

	// QueryPage returns one page of todos matching the query, oldest first,
	// together with the total count under the same predicate
	QueryPage(q models.TodoQuery, page, pageSize int) ([]models.Todo, int, error)
}
