package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-tracker/internal/models"
	"github.com/sbilibin2017/todo-tracker/internal/services"
)

//go:generate mockgen -source=todo_update.go -destination=mock_todo_update.go -package=handlers

// TodoUpdater defines the interface that the service must implement.
type TodoUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, todoID string, in services.UpdateTodoInput) (*models.TodoDB, error)
}

// UpdateTodoRequest is a partial update; omitted fields keep their value
// swagger:model UpdateTodoRequest
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`

	// YYYY-MM-DD or RFC 3339; an empty string clears the due date
	DueDate  *string `json:"dueDate,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

// NewUpdateTodoHandler returns an HTTP handler applying a partial update to one of the caller's todos.
// @Summary Update todo
// @Description Updates any subset of title, isCompleted, dueDate, priority. Todos of other users are reported as not found.
// @Tags todo
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param updateTodoRequest body handlers.UpdateTodoRequest true "Fields to change"
// @Success 200 {object} handlers.TodoItemResponse "Updated todo"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Invalid token"
// @Failure 404 {object} handlers.ErrorResponse "Todo not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /todo/{id} [put]
// @Security BearerAuth
func NewUpdateTodoHandler(svc TodoUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		var req UpdateTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		todo, err := svc.Update(r.Context(), userID, chi.URLParam(r, "id"), services.UpdateTodoInput{
			Title:       req.Title,
			IsCompleted: req.IsCompleted,
			DueDate:     req.DueDate,
			Priority:    req.Priority,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TodoItemResponse{Todo: newTodoResponse(todo)})
	}
}
