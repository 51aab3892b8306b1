package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sbilibin2017/todo-tracker/internal/logger"
	"github.com/sbilibin2017/todo-tracker/internal/models"
	"github.com/sbilibin2017/todo-tracker/internal/services"
)

// ErrorResponse is the body of every failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// TodoResponse is the JSON representation of a todo.
// swagger:model TodoResponse
type TodoResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	IsCompleted     bool   `json:"isCompleted"`
	CreateDate      string `json:"createDate"`
	LastUpdatedDate string `json:"lastUpdatedDate"`
	// Due date as YYYY-MM-DD, empty when unset
	DueDate  string `json:"dueDate"`
	Priority string `json:"priority"`
	User     string `json:"user"`
}

func newTodoResponse(t *models.TodoDB) TodoResponse {
	resp := TodoResponse{
		ID:              t.TodoID.String(),
		Title:           t.Title,
		IsCompleted:     t.IsCompleted,
		CreateDate:      t.CreateDate.UTC().Format(time.RFC3339),
		LastUpdatedDate: t.LastUpdatedDate.UTC().Format(time.RFC3339),
		Priority:        string(t.Priority),
		User:            t.UserID.String(),
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format(time.DateOnly)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps a service error class to its HTTP status.
// Unclassified errors are logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrConflict):
		writeError(w, http.StatusConflict, "User with this username or email already exists")
	case errors.Is(err, services.ErrAuth):
		writeError(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, services.ErrTodoNotFound):
		writeError(w, http.StatusNotFound, "Todo not found")
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// NewNotFoundHandler answers unknown routes.
func NewNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	}
}
