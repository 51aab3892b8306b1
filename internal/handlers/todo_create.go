package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-tracker/internal/models"
	"github.com/sbilibin2017/todo-tracker/internal/services"
)

//go:generate mockgen -source=todo_create.go -destination=mock_todo_create.go -package=handlers

// TodoCreator defines the interface that the service must implement.
type TodoCreator interface {
	Create(ctx context.Context, userID uuid.UUID, in services.CreateTodoInput) (*models.TodoDB, error)
}

// CreateTodoRequest represents the JSON body for creating a todo
// swagger:model CreateTodoRequest
type CreateTodoRequest struct {
	// Title
	// required: true
	// default: Buy milk
	Title string `json:"title"`

	// Due date, YYYY-MM-DD or RFC 3339
	DueDate *string `json:"dueDate,omitempty"`

	// One of low, medium, high, critical. Defaults to low.
	Priority *string `json:"priority,omitempty"`
}

// TodoItemResponse wraps a single todo
// swagger:model TodoItemResponse
type TodoItemResponse struct {
	Todo TodoResponse `json:"todo"`
}

// NewCreateTodoHandler returns an HTTP handler creating a todo for the caller.
// @Summary Create todo
// @Description Creates a todo owned by the authenticated user and increments the user's task counter
// @Tags todo
// @Accept json
// @Produce json
// @Param createTodoRequest body handlers.CreateTodoRequest true "Todo to create"
// @Success 201 {object} handlers.TodoItemResponse "Created todo"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Invalid token"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /todo [post]
// @Security BearerAuth
func NewCreateTodoHandler(svc TodoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		var req CreateTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		todo, err := svc.Create(r.Context(), userID, services.CreateTodoInput{
			Title:    req.Title,
			DueDate:  req.DueDate,
			Priority: req.Priority,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, TodoItemResponse{Todo: newTodoResponse(todo)})
	}
}
