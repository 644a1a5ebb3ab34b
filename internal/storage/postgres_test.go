package storage

import (
	"testing"

	"todoview-api/internal/models"
	"todoview-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgresStorage(t *testing.T) *PostgresStorage {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	return NewPostgresStorage(db)
}

func TestPostgresCreateTodo(t *testing.T) {
	store := setupPostgresStorage(t)

	todo, err := store.CreateTodo("water the plants")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, todo.ID)
	assert.Equal(t, "water the plants", todo.Text)
	assert.Equal(t, models.StatusActive, todo.Status)
}

func TestPostgresUpdateText(t *testing.T) {
	store := setupPostgresStorage(t)
	todo, err := store.CreateTodo("original")
	require.NoError(t, err)

	t.Run("updates text only", func(t *testing.T) {
		require.NoError(t, store.UpdateText(todo.ID, "edited"))

		page, _, err := store.QueryPage(models.TodoQuery{}, 1, 10)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "edited", page[0].Text)
		assert.Equal(t, models.StatusActive, page[0].Status)
	})

	t.Run("returns not found for a missing id", func(t *testing.T) {
		assert.ErrorIs(t, store.UpdateText(uuid.New(), "x"), ErrTodoNotFound)
	})
}

func TestPostgresUpdateStatus(t *testing.T) {
	store := setupPostgresStorage(t)
	todo, err := store.CreateTodo("x")
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(todo.ID, models.StatusCompleted))

	page, _, err := store.QueryPage(models.TodoQuery{Filter: models.FilterCompleted}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, todo.ID, page[0].ID)

	assert.ErrorIs(t, store.UpdateStatus(uuid.New(), models.StatusActive), ErrTodoNotFound)
}

func TestPostgresUpdateStatusWhereNot(t *testing.T) {
	store := setupPostgresStorage(t)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		todo, err := store.CreateTodo("todo")
		require.NoError(t, err)
		ids = append(ids, todo.ID)
	}
	require.NoError(t, store.UpdateStatus(ids[0], models.StatusCompleted))

	t.Run("only touches rows that differ", func(t *testing.T) {
		changed, err := store.UpdateStatusWhereNot(ids, models.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, int64(2), changed)
	})

	t.Run("second pass is a no-op", func(t *testing.T) {
		changed, err := store.UpdateStatusWhereNot(ids, models.StatusCompleted)
		require.NoError(t, err)
		assert.Zero(t, changed)
	})

	t.Run("empty id set writes nothing", func(t *testing.T) {
		changed, err := store.UpdateStatusWhereNot(nil, models.StatusActive)
		require.NoError(t, err)
		assert.Zero(t, changed)
	})
}

func TestPostgresDeleteTodo(t *testing.T) {
	store := setupPostgresStorage(t)
	todo, err := store.CreateTodo("x")
	require.NoError(t, err)

	require.NoError(t, store.DeleteTodo(todo.ID))
	assert.ErrorIs(t, store.DeleteTodo(todo.ID), ErrTodoNotFound)

	_, total, err := store.QueryPage(models.TodoQuery{}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPostgresDeleteTodos(t *testing.T) {
	store := setupPostgresStorage(t)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		todo, err := store.CreateTodo("todo")
		require.NoError(t, err)
		ids = append(ids, todo.ID)
	}

	require.NoError(t, store.DeleteTodos([]uuid.UUID{ids[0], ids[1], uuid.New()}))
	require.NoError(t, store.DeleteTodos(nil))

	_, total, err := store.QueryPage(models.TodoQuery{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestPostgresQueryPage(t *testing.T) {
	store := setupPostgresStorage(t)

	texts := []string{"alpha one", "Beta two", "gamma ONE", "delta", "epsilon one", "zeta"}
	todos := make([]*models.Todo, 0, len(texts))
	for _, text := range texts {
		todo, err := store.CreateTodo(text)
		require.NoError(t, err)
		todos = append(todos, todo)
	}
	require.NoError(t, store.UpdateStatus(todos[1].ID, models.StatusCompleted))
	require.NoError(t, store.UpdateStatus(todos[4].ID, models.StatusCompleted))

	t.Run("pages oldest first", func(t *testing.T) {
		page, total, err := store.QueryPage(models.TodoQuery{Filter: models.FilterAll}, 1, 4)
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		require.Len(t, page, 4)
		assert.Equal(t, "alpha one", page[0].Text)

		page, _, err = store.QueryPage(models.TodoQuery{Filter: models.FilterAll}, 2, 4)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "epsilon one", page[0].Text)
	})

	t.Run("filters by status", func(t *testing.T) {
		_, total, err := store.QueryPage(models.TodoQuery{Filter: models.FilterActive}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
	})

	t.Run("searches case-insensitively", func(t *testing.T) {
		_, total, err := store.QueryPage(models.TodoQuery{Filter: models.FilterAll, Search: "ONE"}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
	})

	t.Run("combines filter and search", func(t *testing.T) {
		page, total, err := store.QueryPage(models.TodoQuery{Filter: models.FilterCompleted, Search: "one"}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, page, 1)
		assert.Equal(t, "epsilon one", page[0].Text)
	})

	t.Run("page past the end is empty, total intact", func(t *testing.T) {
		page, total, err := store.QueryPage(models.TodoQuery{Filter: models.FilterAll}, 9, 4)
		require.NoError(t, err)
		assert.Empty(t, page)
		assert.Equal(t, 6, total)
	})

	t.Run("soft-deleted rows are gone from queries", func(t *testing.T) {
		require.NoError(t, store.DeleteTodo(todos[0].ID))

		_, total, err := store.QueryPage(models.TodoQuery{Filter: models.FilterAll}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
	})
}
