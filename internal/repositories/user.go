package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/todo-tracker/internal/models"
)

const userColumns = `id, username, email, password, total_tasks, completed_tasks, created_at, updated_at`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsernameOrEmail returns the first user whose username matches exactly
// or whose email matches case-insensitively. sql.ErrNoRows when neither exists.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR LOWER(email) = LOWER($2)
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username, email)
	logQuery(query, []any{username, email}, user.UserID, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail looks a user up by email, ignoring case.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)
	logQuery(query, []any{email}, user.UserID, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetStats returns the username, email and task counters of a user.
func (r *UserReadRepository) GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	const query = `
		SELECT username, email, total_tasks, completed_tasks
		FROM users
		WHERE id = $1
	`

	var stats models.UserStats
	err := r.db.GetContext(ctx, &stats, query, userID)
	logQuery(query, []any{userID}, stats, err)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Count returns the number of registered users.
func (r *UserReadRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users`

	var count int64
	err := r.db.GetContext(ctx, &count, query)
	logQuery(query, nil, count, err)
	return count, err
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user. A taken username or email yields ErrDuplicate.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) error {
	const query = `
		INSERT INTO users (id, username, email, password, total_tasks, completed_tasks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query, user.UserID, user.Username, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	// Never log the password hash.
	logQuery(query, []any{user.UserID, user.Username, user.Email}, user.CreatedAt, err)

	return mapError(err)
}

// AdjustCounters atomically shifts both task counters of a user by the given deltas.
// Counters never go below zero. sql.ErrNoRows when the user does not exist.
func (r *UserWriteRepository) AdjustCounters(ctx context.Context, userID uuid.UUID, deltaTotal, deltaCompleted int64) error {
	const query = `
		UPDATE users
		SET total_tasks = GREATEST(total_tasks + $2, 0),
		    completed_tasks = GREATEST(completed_tasks + $3, 0),
		    updated_at = NOW()
		WHERE id = $1
	`
	args := []any{userID, deltaTotal, deltaCompleted}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReconcileCounters recomputes the counters of every user whose stored values
// differ from the todos table and returns how many users were corrected.
func (r *UserWriteRepository) ReconcileCounters(ctx context.Context) (int64, error) {
	const query = `
		UPDATE users AS u
		SET total_tasks = c.total,
		    completed_tasks = c.completed,
		    updated_at = NOW()
		FROM (
			SELECT users.id,
			       COUNT(todos.id) AS total,
			       COUNT(todos.id) FILTER (WHERE todos.is_completed) AS completed
			FROM users
			LEFT JOIN todos ON todos.user_id = users.id
			GROUP BY users.id
		) AS c
		WHERE u.id = c.id
		  AND (u.total_tasks <> c.total OR u.completed_tasks <> c.completed)
	`

	res, err := r.db.ExecContext(ctx, query)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, nil, rowsAffected, err)

	return rowsAffected, err
}
