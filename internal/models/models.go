package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents the completion state of a todo
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// statusTransitions is the fixed toggle table between the two states
var statusTransitions = map[Status]Status{
	StatusActive:    StatusCompleted,
	StatusCompleted: StatusActive,
}

// Toggled returns the opposite status. Callers must pass the status they
// last observed: repeated calls with the same input produce the same output,
// not a further toggle.
func (s Status) Toggled() Status {
	return statusTransitions[s]
}

// IsValid checks if the status is one of the two known states
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusCompleted
}

// StatusFilter selects which todos a view shows
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// IsValid checks if the filter is one of the known values
func (f StatusFilter) IsValid() bool {
	return f == FilterAll || f == FilterActive || f == FilterCompleted
}

// Todo represents a single todo entry
type Todo struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Text      string         `gorm:"not null;size:255" json:"text"`
	Status    Status         `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook to generate UUID if not set
func (t *Todo) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsCompleted checks if the todo is completed
func (t *Todo) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// TodoQuery combines a status filter and a case-insensitive substring search
// into a single store predicate. Both conditions compose with AND; an empty
// search matches everything.
type TodoQuery struct {
	Filter StatusFilter
	Search string
}

// Matches reports whether a todo passes the query predicate
func (q TodoQuery) Matches(t Todo) bool {
	if q.Filter != "" && q.Filter != FilterAll && Status(q.Filter) != t.Status {
		return false
	}
	if q.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Text), strings.ToLower(q.Search))
}

// Pagination represents pagination information for a rendered page
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// AddTodoRequest carries a new todo plus the pagination metrics the client
// captured from its last render, used to decide where to navigate after
// the insert.
type AddTodoRequest struct {
	Text       string `json:"text"`
	LastPage   int    `json:"lastPage" binding:"required,min=1"`
	TotalItems int    `json:"totalItems" binding:"min=0"`
}

// EditTodoRequest updates the text of an existing todo
type EditTodoRequest struct {
	Text string `json:"text"`
}

// ToggleTodoRequest flips a todo's status based on the status the client
// last rendered
type ToggleTodoRequest struct {
	CurrentStatus Status `json:"currentStatus" binding:"required"`
}

// TogglePageRequest bulk-toggles the items visible on the current page
type TogglePageRequest struct {
	IDs          []uuid.UUID `json:"ids" binding:"required"`
	AllCompleted bool        `json:"allCompleted"`
}

// ClearCompletedRequest deletes the completed items visible on the current
// page; HasMorePages is the flag the client captured from its last render
type ClearCompletedRequest struct {
	IDs          []uuid.UUID `json:"ids" binding:"required"`
	HasMorePages bool        `json:"hasMorePages"`
}

// ViewResponse is the rendered view returned after every read or mutation,
// so the client always holds fresh pre-mutation metrics
type ViewResponse struct {
	Todos        []Todo       `json:"todos"`
	Pagination   *Pagination  `json:"pagination"`
	HasMorePages bool         `json:"hasMorePages"`
	AllCompleted bool         `json:"allCompleted"`
	Filter       StatusFilter `json:"filter"`
	Search       string       `json:"search"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
