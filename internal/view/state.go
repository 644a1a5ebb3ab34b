package view

import "todoview-api/internal/models"

// State carries the transient view state for one request cycle: the active
// filter, the search text, the current page and the fixed page size. It is a
// value, not shared memory: every operation returns the next state instead
// of mutating it, so concurrent sessions never race on view state.
type State struct {
	Filter   models.StatusFilter `json:"filter"`
	Search   string              `json:"search"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"-"`
}

// NewState returns the default view state for a fresh session: the "all"
// filter, no search text, page 1.
func NewState(pageSize int) State {
	return State{
		Filter:   models.FilterAll,
		Page:     1,
		PageSize: pageSize,
	}
}

// Query returns the store predicate for the current filter and search text
func (s State) Query() models.TodoQuery {
	return models.TodoQuery{Filter: s.Filter, Search: s.Search}
}
