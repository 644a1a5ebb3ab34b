package storage

import (
	"errors"
	"sort"
	"sync"
	"time"

	"todoview-api/internal/models"

	"github.com/google/uuid"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
)

// Storage provides in-memory storage for todos
type Storage struct {
	mu    sync.RWMutex
	todos map[uuid.UUID]*models.Todo
	seq   map[uuid.UUID]int64 // insertion order, stable tiebreaker for paging
	next  int64
}

// NewStorage creates a new in-memory storage instance
func NewStorage() *Storage {
	return &Storage{
		todos: make(map[uuid.UUID]*models.Todo),
		seq:   make(map[uuid.UUID]int64),
	}
}

// CreateTodo creates a new todo with status defaulting to active
func (s *Storage) CreateTodo(text string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	todo := &models.Todo{
		ID:        uuid.New(),
		Text:      text,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.todos[todo.ID] = todo
	s.seq[todo.ID] = s.next
	s.next++

	todoCopy := *todo
	return &todoCopy, nil
}

// UpdateText updates a todo's text only
func (s *Storage) UpdateText(id uuid.UUID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, exists := s.todos[id]
	if !exists {
		return ErrTodoNotFound
	}

	todo.Text = text
	todo.UpdatedAt = time.Now()
	return nil
}

// UpdateStatus sets a todo's status
func (s *Storage) UpdateStatus(id uuid.UUID, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, exists := s.todos[id]
	if !exists {
		return ErrTodoNotFound
	}

	todo.Status = status
	todo.UpdatedAt = time.Now()
	return nil
}

// UpdateStatusWhereNot sets the status of every listed todo whose current
// status differs from desired and returns the number of todos changed
func (s *Storage) UpdateStatusWhereNot(ids []uuid.UUID, desired models.Status) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int64
	for _, id := range ids {
		todo, exists := s.todos[id]
		if !exists || todo.Status == desired {
			continue
		}
		todo.Status = desired
		todo.UpdatedAt = time.Now()
		changed++
	}
	return changed, nil
}

// DeleteTodo deletes a todo by id
func (s *Storage) DeleteTodo(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[id]; !exists {
		return ErrTodoNotFound
	}

	delete(s.todos, id)
	delete(s.seq, id)
	return nil
}

// DeleteTodos deletes every listed todo; ids no longer present are ignored
func (s *Storage) DeleteTodos(ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.todos, id)
		delete(s.seq, id)
	}
	return nil
}

// QueryPage returns one page of todos matching the query, oldest first,
// together with the total count under the same predicate
func (s *Storage) QueryPage(q models.TodoQuery, page, pageSize int) ([]models.Todo, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		if q.Matches(*todo) {
			matched = append(matched, *todo)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return s.seq[matched[i].ID] < s.seq[matched[j].ID]
	})

	totalItems := len(matched)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start < 0 {
		start = 0
	}
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return matched[start:end], totalItems, nil
}
