package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-tracker/internal/jwt"
	"github.com/sbilibin2017/todo-tracker/internal/models"
)

//go:generate mockgen -source=todo_list.go -destination=mock_todo_list.go -package=handlers

// TodoLister defines the interface that the service must implement.
type TodoLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.TodoDB, error)
}

// TodoListResponse represents the caller's todos
// swagger:model TodoListResponse
type TodoListResponse struct {
	Todos []TodoResponse `json:"todos"`
}

// NewListTodosHandler returns an HTTP handler listing the caller's todos, newest first.
// @Summary List todos
// @Description Returns all todos owned by the authenticated user
// @Tags todo
// @Produce json
// @Success 200 {object} handlers.TodoListResponse "User todos"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Invalid token"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /todo [get]
// @Security BearerAuth
func NewListTodosHandler(svc TodoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		todos, err := svc.List(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := TodoListResponse{Todos: make([]TodoResponse, 0, len(todos))}
		for i := range todos {
			resp.Todos = append(resp.Todos, newTodoResponse(&todos[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// userIDFromRequest reads the caller placed in the context by the auth middleware.
func userIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims := jwt.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return claims.UserID, true
}
