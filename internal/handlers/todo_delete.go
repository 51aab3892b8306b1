package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

//go:generate mockgen -source=todo_delete.go -destination=mock_todo_delete.go -package=handlers

// TodoDeleter defines the interface that the service must implement.
type TodoDeleter interface {
	Delete(ctx context.Context, userID uuid.UUID, todoID string) error
}

// MessageResponse carries a confirmation message
// swagger:model MessageResponse
type MessageResponse struct {
	// default: Todo deleted
	Message string `json:"message"`
}

// NewDeleteTodoHandler returns an HTTP handler deleting one of the caller's todos.
// @Summary Delete todo
// @Description Deletes a todo owned by the authenticated user and decrements the user's counters
// @Tags todo
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} handlers.MessageResponse "Todo deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Invalid token"
// @Failure 404 {object} handlers.ErrorResponse "Todo not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /todo/{id} [delete]
// @Security BearerAuth
func NewDeleteTodoHandler(svc TodoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Todo deleted"})
	}
}
