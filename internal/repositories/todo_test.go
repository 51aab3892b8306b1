package repositories

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTodo(userID uuid.UUID, title string) *models.TodoDB {
	return &models.TodoDB{
		TodoID:   uuid.New(),
		UserID:   userID,
		Title:    title,
		Priority: models.DefaultPriority,
	}
}

func TestTodoRepositories_SaveAndList(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	ctx := context.Background()
	writer := NewTodoWriteRepository(db)
	reader := NewTodoReadRepository(db)

	owner := createUser(t, db, "ivan")
	other := createUser(t, db, "judy")

	first := newTodo(owner.UserID, "first")
	require.NoError(t, writer.Save(ctx, first))
	assert.False(t, first.CreateDate.IsZero())
	assert.Equal(t, first.CreateDate, first.LastUpdatedDate)

	due := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	second := newTodo(owner.UserID, "second")
	second.DueDate = &due
	second.Priority = models.PriorityHigh
	require.NoError(t, writer.Save(ctx, second))

	require.NoError(t, writer.Save(ctx, newTodo(other.UserID, "not yours")))

	todos, err := reader.ListByUserID(ctx, owner.UserID)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "second", todos[0].Title, "newest first")
	assert.Equal(t, "first", todos[1].Title)
	assert.Equal(t, models.PriorityHigh, todos[0].Priority)
	require.NotNil(t, todos[0].DueDate)
	assert.Equal(t, "2030-01-02", todos[0].DueDate.Format(time.DateOnly))
	assert.Nil(t, todos[1].DueDate)

	empty, err := reader.ListByUserID(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	count, err := reader.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestTodoWriteRepository_Update(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	ctx := context.Background()
	writer := NewTodoWriteRepository(db)
	owner := createUser(t, db, "mallory")
	other := createUser(t, db, "niaj")

	due := time.Date(2031, 5, 6, 0, 0, 0, 0, time.UTC)
	todo := newTodo(owner.UserID, "original")
	todo.DueDate = &due
	require.NoError(t, writer.Save(ctx, todo))

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		done := true
		updated, err := writer.Update(ctx, todo.TodoID, owner.UserID, models.TodoUpdate{IsCompleted: &done})
		require.NoError(t, err)
		assert.False(t, updated.WasCompleted)
		assert.True(t, updated.IsCompleted)
		assert.Equal(t, "original", updated.Title)
		assert.Equal(t, models.PriorityLow, updated.Priority)
		require.NotNil(t, updated.DueDate)
		assert.Equal(t, "2031-05-06", updated.DueDate.Format(time.DateOnly))
		assert.False(t, updated.LastUpdatedDate.Before(todo.LastUpdatedDate))
	})

	t.Run("reports previous completion flag", func(t *testing.T) {
		title := "renamed"
		priority := models.PriorityCritical
		updated, err := writer.Update(ctx, todo.TodoID, owner.UserID, models.TodoUpdate{Title: &title, Priority: &priority})
		require.NoError(t, err)
		assert.True(t, updated.WasCompleted)
		assert.True(t, updated.IsCompleted)
		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, models.PriorityCritical, updated.Priority)
	})

	t.Run("clear due date", func(t *testing.T) {
		updated, err := writer.Update(ctx, todo.TodoID, owner.UserID, models.TodoUpdate{ClearDueDate: true})
		require.NoError(t, err)
		assert.Nil(t, updated.DueDate)
	})

	t.Run("other user gets no rows and nothing changes", func(t *testing.T) {
		title := "hijacked"
		updated, err := writer.Update(ctx, todo.TodoID, other.UserID, models.TodoUpdate{Title: &title})
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, updated)

		got, err := NewTodoReadRepository(db).ListByUserID(ctx, owner.UserID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "renamed", got[0].Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := writer.Update(ctx, uuid.New(), owner.UserID, models.TodoUpdate{})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestTodoWriteRepository_ConcurrentToggleSeesPreviousState(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	ctx := context.Background()
	writer := NewTodoWriteRepository(db)
	owner := createUser(t, db, "olivia")
	todo := newTodo(owner.UserID, "race")
	require.NoError(t, writer.Save(ctx, todo))

	const workers = 20
	done := true
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		transitions int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			updated, err := writer.Update(ctx, todo.TodoID, owner.UserID, models.TodoUpdate{IsCompleted: &done})
			if !assert.NoError(t, err) {
				return
			}
			if !updated.WasCompleted && updated.IsCompleted {
				mu.Lock()
				transitions++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, transitions, "exactly one update observes the incomplete -> complete transition")
}

func TestTodoWriteRepository_Delete(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	ctx := context.Background()
	writer := NewTodoWriteRepository(db)
	owner := createUser(t, db, "peggy")
	other := createUser(t, db, "rupert")

	todo := newTodo(owner.UserID, "to delete")
	todo.IsCompleted = true
	require.NoError(t, writer.Save(ctx, todo))

	_, err := writer.Delete(ctx, todo.TodoID, other.UserID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	deleted, err := writer.Delete(ctx, todo.TodoID, owner.UserID)
	require.NoError(t, err)
	assert.Equal(t, todo.TodoID, deleted.TodoID)
	assert.True(t, deleted.IsCompleted)

	_, err = writer.Delete(ctx, todo.TodoID, owner.UserID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
