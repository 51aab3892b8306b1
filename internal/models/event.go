package models

// Todo event types
const (
	TodoCreated = "todo.created"
	TodoUpdated = "todo.updated"
	TodoDeleted = "todo.deleted"
)

// TodoEvent is published after every successful todo mutation.
type TodoEvent struct {
	EventID     string `json:"eventId"`     // Unique event identifier
	Type        string `json:"type"`        // One of the Todo* event types
	TodoID      string `json:"todoId"`      // Affected todo
	UserID      string `json:"userId"`      // Owner of the todo
	IsCompleted bool   `json:"isCompleted"` // Completion flag after the mutation
	Timestamp   int64  `json:"timestamp"`   // Unix seconds
}
