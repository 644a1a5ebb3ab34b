package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"todoview-api/internal/models"
	"todoview-api/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ViewHandler exposes the list view over HTTP. View state (filter, search,
// page) travels in the query string so the server holds nothing between
// requests; pre-mutation metrics (last page, totals, counts) are captured by
// the client from its last render and passed back with each mutation.
type ViewHandler struct {
	controller *view.Controller
	pageSize   int
}

// NewViewHandler creates a view handler with a fixed page size
func NewViewHandler(controller *view.Controller, pageSize int) *ViewHandler {
	return &ViewHandler{controller: controller, pageSize: pageSize}
}

// Render handles GET /view
func (h *ViewHandler) Render(c *gin.Context) {
	state, ok := h.parseState(c)
	if !ok {
		return
	}

	h.render(c, http.StatusOK, state)
}

// AddTodo handles POST /view/todos
func (h *ViewHandler) AddTodo(c *gin.Context) {
	state, ok := h.parseState(c)
	if !ok {
		return
	}

	var req models.AddTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
		})
		return
	}

	state, _, err := h.controller.AddTodo(state, req.Text, req.LastPage, req.TotalItems)
	if err != nil {
		h.handleError(c, err, "Failed to add todo")
		return
	}

	h.render(c, http.StatusCreated, state)
}

// EditTodo handles PUT /view/todos/:todoId
func (h *ViewHandler) EditTodo(c *gin.Context) {
	state, ok := h.parseState(c)
	if !ok {
		return
	}

	todoID := uuid.MustParse(c.Param("todoId"))

	var req models.EditTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
		})
		return
	}

	state, err := h.controller.EditTodo(state, todoID, req.Text)
	if err != nil {
		h.handleError(c, err, "Failed to edit todo")
		return
	}

	h.render(c, http.StatusOK, state)
}

// DeleteTodo handles DELETE /view/todos/:todoId
func (h *ViewHandler) DeleteTodo(c *gin.Context) {
	state, ok := h.parseState(c)
	if !ok {
		return
	}

	todoID := uuid.MustParse(c.Param("todoId"))
	countOnPage, _ := strconv.Atoi(c.DefaultQuery("countOnPage", "0"))

	state, err := h.controller.DeleteTodo(state, todoID, countOnPage)
	if err != nil {
		h.handleError(c, err, "Failed to delete todo")
		return
	}

	h.render(c, http.StatusOK, state)
}

// ToggleTodo handles POST /view/todos/:todoId/toggle
func (h *ViewHandler) ToggleTodo(c *gin.Context) {
	state, ok := h.parseState(c)
	if !ok {
		return
	}

	todoID := uuid.MustParse(c.Param("todoId"))

	var req models.ToggleTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.CurrentStatus.IsValid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_STATUS",
			Message: "currentStatus must be one of: active, completed",
		})
		return
	}

	state, err := h.controller.ToggleStatus(state, todoID, req.CurrentStatus)
	if err != nil {
		h.handleError(c, err, "Failed to toggle todo")
		return
	}

	h.render(c, http.StatusOK, state)
}

// TogglePage handles POST /view/toggle-page
func (h *ViewHandler) TogglePage(c *gin.Context) {
	state, ok := h.parseState(c)
	if !ok {
		return
	}

	var req models.TogglePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
		})
		return
	}

	state, err := h.controller.ToggleCurrentPage(state, req.IDs, req.AllCompleted)
	if err != nil {
		h.handleError(c, err, "Failed to toggle page")
		return
	}

	h.render(c, http.StatusOK, state)
}

// ClearCompleted handles POST /view/clear-completed
func (h *ViewHandler) ClearCompleted(c *gin.Context) {
	state, ok := h.parseState(c)
	if !ok {
		return
	}

	var req models.ClearCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: "Invalid request body",
			Details: map[string]interface{}{"error": err.Error()},
		})
		return
	}

	state, err := h.controller.ClearCompleted(state, req.IDs, req.HasMorePages)
	if err != nil {
		h.handleError(c, err, "Failed to clear completed todos")
		return
	}

	h.render(c, http.StatusOK, state)
}

// parseState reads the view state from the query string. Filter and page
// fall back to their defaults when absent so a bare GET renders the first
// page of everything.
func (h *ViewHandler) parseState(c *gin.Context) (view.State, bool) {
	state := view.NewState(h.pageSize)

	filter := models.StatusFilter(c.DefaultQuery("filter", string(models.FilterAll)))
	if !filter.IsValid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_FILTER",
			Message: "filter must be one of: all, active, completed",
		})
		return state, false
	}
	state.Filter = filter

	state.Search = c.Query("search")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	state.Page = page

	return state, true
}

// render re-queries the store and writes the full view response, so the
// client always leaves with fresh pre-mutation metrics
func (h *ViewHandler) render(c *gin.Context, status int, state view.State) {
	result, err := h.controller.Render(state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to render view",
		})
		return
	}

	c.JSON(status, models.ViewResponse{
		Todos: result.Todos,
		Pagination: &models.Pagination{
			Page:       result.State.Page,
			Limit:      h.pageSize,
			TotalPages: result.LastPage,
			TotalItems: result.TotalItems,
		},
		HasMorePages: result.HasMorePages,
		AllCompleted: result.AllCompleted,
		Filter:       result.State.Filter,
		Search:       result.State.Search,
	})
}

// handleError maps core errors to HTTP responses: validation errors are
// field-scoped 400s, everything else is a sanitized 500
func (h *ViewHandler) handleError(c *gin.Context, err error, message string) {
	var verr *view.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: verr.Message,
			Details: map[string]interface{}{"field": verr.Field},
		})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: message,
	})
}
