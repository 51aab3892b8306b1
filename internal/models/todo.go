package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency of a todo.
type Priority string

// Supported priorities
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// DefaultPriority is assigned when a todo is created without one.
const DefaultPriority = PriorityLow

// IsValid reports whether p is one of the supported priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// TodoDB represents a todo row in the database
type TodoDB struct {
	TodoID          uuid.UUID  `db:"id"`                // Unique todo identifier
	UserID          uuid.UUID  `db:"user_id"`           // Owner, immutable after creation
	Title           string     `db:"title"`             // Trimmed, non-empty title
	IsCompleted     bool       `db:"is_completed"`      // Completion flag
	CreateDate      time.Time  `db:"create_date"`       // Set once at creation
	LastUpdatedDate time.Time  `db:"last_updated_date"` // Refreshed on every update
	DueDate         *time.Time `db:"due_date"`          // Optional due date
	Priority        Priority   `db:"priority"`          // One of the supported priorities
}

// TodoUpdate describes a partial update. Nil fields are left unchanged.
type TodoUpdate struct {
	Title        *string
	IsCompleted  *bool
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *Priority
}

// UpdatedTodo is the result of an update together with the completion flag it replaced.
type UpdatedTodo struct {
	TodoDB
	WasCompleted bool `db:"was_completed"`
}
