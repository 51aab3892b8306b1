package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		total_tasks BIGINT NOT NULL DEFAULT 0 CHECK (total_tasks >= 0),
		completed_tasks BIGINT NOT NULL DEFAULT 0 CHECK (completed_tasks >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (LOWER(email));`,
	`CREATE TABLE IF NOT EXISTS todos (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		create_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_updated_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		due_date DATE,
		priority VARCHAR(16) NOT NULL DEFAULT 'low'
			CHECK (priority IN ('low', 'medium', 'high', 'critical'))
	);`,
	`CREATE INDEX IF NOT EXISTS todos_user_id_create_date_idx ON todos (user_id, create_date DESC);`,
}

// Migrate creates the users and todos tables and their indexes if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
