package storage

import (
	"strings"

	"todoview-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostgresStorage implements storage using PostgreSQL with GORM
type PostgresStorage struct {
	db *gorm.DB
}

// NewPostgresStorage creates a new PostgreSQL storage instance
func NewPostgresStorage(db *gorm.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// CreateTodo creates a new todo with status defaulting to active
func (s *PostgresStorage) CreateTodo(text string) (*models.Todo, error) {
	todo := &models.Todo{
		Text:   text,
		Status: models.StatusActive,
	}

	if err := s.db.Create(todo).Error; err != nil {
		return nil, err
	}

	return todo, nil
}

// UpdateText updates a todo's text only
func (s *PostgresStorage) UpdateText(id uuid.UUID, text string) error {
	result := s.db.Model(&models.Todo{}).
		Where("id = ?", id).
		Update("text", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// UpdateStatus sets a todo's status
func (s *PostgresStorage) UpdateStatus(id uuid.UUID, status models.Status) error {
	result := s.db.Model(&models.Todo{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// UpdateStatusWhereNot sets the status of every listed todo whose current
// status differs from desired and returns the number of rows changed
func (s *PostgresStorage) UpdateStatusWhereNot(ids []uuid.UUID, desired models.Status) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := s.db.Model(&models.Todo{}).
		Where("id IN ?", ids).
		Where("status <> ?", desired).
		Update("status", desired)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteTodo deletes a todo by id
func (s *PostgresStorage) DeleteTodo(id uuid.UUID) error {
	result := s.db.Delete(&models.Todo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// DeleteTodos deletes every listed todo; ids no longer present are ignored
func (s *PostgresStorage) DeleteTodos(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return s.db.Where("id IN ?", ids).Delete(&models.Todo{}).Error
}

// QueryPage returns one page of todos matching the query, oldest first,
// together with the total count under the same predicate
func (s *PostgresStorage) QueryPage(q models.TodoQuery, page, pageSize int) ([]models.Todo, int, error) {
	var totalItems int64
	if err := s.scopeQuery(q).Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var todos []models.Todo
	if err := s.scopeQuery(q).
		Order("created_at ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&todos).Error; err != nil {
		return nil, 0, err
	}

	return todos, int(totalItems), nil
}

// scopeQuery translates the view predicate into WHERE clauses
func (s *PostgresStorage) scopeQuery(q models.TodoQuery) *gorm.DB {
	query := s.db.Model(&models.Todo{})

	if q.Filter != "" && q.Filter != models.FilterAll {
		query = query.Where("status = ?", string(q.Filter))
	}
	if q.Search != "" {
		query = query.Where("LOWER(text) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}

	return query
}
