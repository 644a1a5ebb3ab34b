package view

import (
	"errors"
	"strings"

	"todoview-api/internal/models"
	"todoview-api/internal/storage"

	"github.com/google/uuid"
)

// ValidationError reports a recoverable, field-scoped input error. No store
// call is made when one is returned and the view state is left unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Controller orchestrates mutations against the store and maintains the
// page/filter/search invariants of the view. It holds no per-session state;
// each operation takes a State value and returns the next one, so a failed
// store call leaves the caller's prior state intact for a retry.
type Controller struct {
	store storage.Store
}

// NewController creates a controller backed by the given store
func NewController(store storage.Store) *Controller {
	return &Controller{store: store}
}

// Result is the output of a render: the page slice plus the derived flags
// the view needs
type Result struct {
	Todos        []models.Todo
	TotalItems   int
	LastPage     int
	HasMorePages bool
	AllCompleted bool
	State        State
}

// ChangeFilter sets the status filter and resets to the first page. No store
// call is made; the next render re-queries with the new predicate.
func (c *Controller) ChangeFilter(s State, filter models.StatusFilter) State {
	s.Filter = filter
	s.Page = 1
	return s
}

// ChangeSearch sets the search text and resets to the first page
func (c *Controller) ChangeSearch(s State, search string) State {
	s.Search = search
	s.Page = 1
	return s
}

// GoToPage sets the current page without bounds checking; Render clamps when
// the underlying set has shrunk under the requested page.
func (c *Controller) GoToPage(s State, page int) State {
	s.Page = page
	return s
}

// AddTodo creates a todo and navigates to the page it lands on.
// lastPageBeforeAdd and totalBeforeAdd are the unfiltered metrics the caller
// captured from its last render: when the last page was exactly full, the
// insert opens a new trailing page, so the view moves there; otherwise the
// last page still has room. New items are always active, so they are visible
// under both the "all" and "active" filters.
func (c *Controller) AddTodo(s State, text string, lastPageBeforeAdd, totalBeforeAdd int) (State, *models.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return s, nil, &ValidationError{Field: "text", Message: "todo text must not be empty"}
	}

	todo, err := c.store.CreateTodo(text)
	if err != nil {
		return s, nil, err
	}

	if totalBeforeAdd%s.PageSize == 0 {
		s.Page = lastPageBeforeAdd + 1
	} else {
		s.Page = lastPageBeforeAdd
	}
	return s, todo, nil
}

// DeleteTodo deletes a todo by id. countOnPageBefore is the number of items
// the caller saw on the current page: when the deleted item was the only one
// and the view is past page 1, the view steps back so it never points at an
// empty page while a prior page still has content. A todo already gone is a
// no-op success.
func (c *Controller) DeleteTodo(s State, id uuid.UUID, countOnPageBefore int) (State, error) {
	if err := c.store.DeleteTodo(id); err != nil && !errors.Is(err, storage.ErrTodoNotFound) {
		return s, err
	}

	if countOnPageBefore == 1 && s.Page != 1 {
		s.Page--
	}
	return s, nil
}

// EditTodo updates a todo's text only, leaving its status untouched
func (c *Controller) EditTodo(s State, id uuid.UUID, text string) (State, error) {
	if strings.TrimSpace(text) == "" {
		return s, &ValidationError{Field: "text", Message: "todo text must not be empty"}
	}

	if err := c.store.UpdateText(id, text); err != nil && !errors.Is(err, storage.ErrTodoNotFound) {
		return s, err
	}
	return s, nil
}

// ToggleStatus flips a todo's status through the fixed active/completed
// transition table. Callers pass the status they last rendered: repeated
// calls with the same captured status all produce the same result.
func (c *Controller) ToggleStatus(s State, id uuid.UUID, current models.Status) (State, error) {
	if err := c.store.UpdateStatus(id, current.Toggled()); err != nil && !errors.Is(err, storage.ErrTodoNotFound) {
		return s, err
	}
	return s, nil
}

// ToggleCurrentPage flips every item visible on the current page to a single
// target status: active when the caller last rendered the page as fully
// completed, completed otherwise. Items already at the target are skipped by
// the store, making a repeated call a no-op.
func (c *Controller) ToggleCurrentPage(s State, ids []uuid.UUID, allCompleted bool) (State, error) {
	desired := models.StatusCompleted
	if allCompleted {
		desired = models.StatusActive
	}

	if _, err := c.store.UpdateStatusWhereNot(ids, desired); err != nil {
		return s, err
	}
	return s, nil
}

// ClearCompleted deletes the given id set, which the caller has already
// filtered down to the completed items on the current page. When the view is
// past page 1 and this was the last page, the batch can empty the whole page,
// so the view steps back; otherwise it stays.
func (c *Controller) ClearCompleted(s State, ids []uuid.UUID, hasMorePagesBefore bool) (State, error) {
	if err := c.store.DeleteTodos(ids); err != nil {
		return s, err
	}

	if s.Page != 1 && !hasMorePagesBefore {
		s.Page--
	}
	return s, nil
}

// Render re-queries the store with the current filter, search and page,
// clamping the page down to the last page when the underlying set has shrunk
// under it. The all-completed flag is recomputed from the returned slice on
// every render and never cached; an empty slice counts as all completed.
func (c *Controller) Render(s State) (*Result, error) {
	if s.Page < 1 {
		s.Page = 1
	}

	todos, total, err := c.store.QueryPage(s.Query(), s.Page, s.PageSize)
	if err != nil {
		return nil, err
	}

	info := Paginate(total, s.PageSize, s.Page)
	if s.Page > info.LastPage {
		s.Page = info.LastPage
		todos, total, err = c.store.QueryPage(s.Query(), s.Page, s.PageSize)
		if err != nil {
			return nil, err
		}
		info = Paginate(total, s.PageSize, s.Page)
	}

	return &Result{
		Todos:        todos,
		TotalItems:   total,
		LastPage:     info.LastPage,
		HasMorePages: info.HasMorePages,
		AllCompleted: allCompleted(todos),
		State:        s,
	}, nil
}

// allCompleted reports whether every todo in the slice is completed.
// Vacuously true for an empty slice.
func allCompleted(todos []models.Todo) bool {
	for i := range todos {
		if todos[i].Status != models.StatusCompleted {
			return false
		}
	}
	return true
}
