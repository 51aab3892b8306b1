package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/todo-tracker/internal/models"
)

const todoColumns = `id, user_id, title, is_completed, create_date, last_updated_date, due_date, priority`

// TodoReadRepository handles todo read operations
type TodoReadRepository struct {
	db *sqlx.DB
}

func NewTodoReadRepository(db *sqlx.DB) *TodoReadRepository {
	return &TodoReadRepository{db: db}
}

// ListByUserID returns every todo of the user, newest first.
func (r *TodoReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.TodoDB, error) {
	const query = `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1
		ORDER BY create_date DESC, id
	`

	todos := []models.TodoDB{}
	err := r.db.SelectContext(ctx, &todos, query, userID)
	logQuery(query, []any{userID}, len(todos), err)
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// Count returns the number of todos across all users.
func (r *TodoReadRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM todos`

	var count int64
	err := r.db.GetContext(ctx, &count, query)
	logQuery(query, nil, count, err)
	return count, err
}

// TodoWriteRepository handles todo write operations
type TodoWriteRepository struct {
	db *sqlx.DB
}

func NewTodoWriteRepository(db *sqlx.DB) *TodoWriteRepository {
	return &TodoWriteRepository{db: db}
}

// Save inserts the todo and fills in the timestamps assigned by the database.
func (r *TodoWriteRepository) Save(ctx context.Context, todo *models.TodoDB) error {
	const query = `
		INSERT INTO todos (id, user_id, title, is_completed, create_date, last_updated_date, due_date, priority)
		VALUES ($1, $2, $3, $4, NOW(), NOW(), $5, $6)
		RETURNING create_date, last_updated_date
	`
	args := []any{todo.TodoID, todo.UserID, todo.Title, todo.IsCompleted, todo.DueDate, string(todo.Priority)}

	err := r.db.QueryRowxContext(ctx, query, args...).Scan(&todo.CreateDate, &todo.LastUpdatedDate)
	logQuery(query, args, todo.CreateDate, err)

	return err
}

// Update applies a partial update to a todo owned by the user and returns the
// new row together with the completion flag it had before. The previous row is
// locked inside the same statement, so concurrent toggles see each other's result.
// sql.ErrNoRows when the todo does not exist or belongs to someone else.
func (r *TodoWriteRepository) Update(ctx context.Context, todoID, userID uuid.UUID, upd models.TodoUpdate) (*models.UpdatedTodo, error) {
	const query = `
		UPDATE todos AS t
		SET title = COALESCE($3::TEXT, t.title),
		    is_completed = COALESCE($4::BOOLEAN, t.is_completed),
		    due_date = CASE WHEN $5::BOOLEAN THEN $6::DATE ELSE t.due_date END,
		    priority = COALESCE($7::VARCHAR, t.priority),
		    last_updated_date = NOW()
		FROM (
			SELECT id, is_completed
			FROM todos
			WHERE id = $1 AND user_id = $2
			FOR UPDATE
		) AS prev
		WHERE t.id = prev.id
		RETURNING t.id, t.user_id, t.title, t.is_completed, t.create_date,
		          t.last_updated_date, t.due_date, t.priority,
		          prev.is_completed AS was_completed
	`

	var priority *string
	if upd.Priority != nil {
		p := string(*upd.Priority)
		priority = &p
	}
	setDueDate := upd.DueDate != nil || upd.ClearDueDate
	args := []any{todoID, userID, upd.Title, upd.IsCompleted, setDueDate, upd.DueDate, priority}

	var todo models.UpdatedTodo
	err := r.db.GetContext(ctx, &todo, query, args...)
	logQuery(query, args, todo.TodoID, err)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// Delete removes a todo owned by the user and returns the deleted row.
// sql.ErrNoRows when the todo does not exist or belongs to someone else.
func (r *TodoWriteRepository) Delete(ctx context.Context, todoID, userID uuid.UUID) (*models.TodoDB, error) {
	const query = `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
		RETURNING ` + todoColumns

	var todo models.TodoDB
	err := r.db.GetContext(ctx, &todo, query, todoID, userID)
	logQuery(query, []any{todoID, userID}, todo.TodoID, err)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}
