package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID         uuid.UUID `json:"id" db:"id"`                          // Primary key
	Username       string    `json:"username" db:"username"`              // Unique, trimmed username
	Email          string    `json:"email" db:"email"`                    // Unique, lower-cased email
	PasswordHash   string    `json:"-" db:"password"`                     // bcrypt hash
	TotalTasks     int64     `json:"totalTasks" db:"total_tasks"`         // Live todos owned by the user
	CompletedTasks int64     `json:"completedTasks" db:"completed_tasks"` // Live todos marked complete
	CreatedAt      time.Time `json:"created_at" db:"created_at"`          // Creation timestamp
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`          // Last update timestamp
}

// UserStats is the per-user summary returned by /user-stats.
type UserStats struct {
	Username       string `json:"username" db:"username"`
	Email          string `json:"email" db:"email"`
	TotalTasks     int64  `json:"totalTasks" db:"total_tasks"`
	CompletedTasks int64  `json:"completedTasks" db:"completed_tasks"`
}
