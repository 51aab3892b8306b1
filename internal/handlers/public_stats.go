package handlers

import (
	"context"
	"net/http"
)

//go:generate mockgen -source=public_stats.go -destination=mock_public_stats.go -package=handlers

// UserCounter reports the number of registered users.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// TaskCounter reports the number of todos across all users.
type TaskCounter interface {
	CountTodos(ctx context.Context) (int64, error)
}

// CountResponse carries a public total
// swagger:model CountResponse
type CountResponse struct {
	// default: 42
	Count int64 `json:"count"`
}

// NewUserCountHandler returns an HTTP handler reporting the number of registered users.
// @Summary Count users
// @Tags stats
// @Produce json
// @Success 200 {object} handlers.CountResponse "Number of users"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /get-user [get]
func NewUserCountHandler(svc UserCounter) http.HandlerFunc {
	return newCountHandler(svc.CountUsers)
}

// NewTaskCountHandler returns an HTTP handler reporting the number of todos.
// @Summary Count todos
// @Tags stats
// @Produce json
// @Success 200 {object} handlers.CountResponse "Number of todos"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /get-total-tasks [get]
func NewTaskCountHandler(svc TaskCounter) http.HandlerFunc {
	return newCountHandler(svc.CountTodos)
}

func newCountHandler(count func(ctx context.Context) (int64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := count(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, CountResponse{Count: n})
	}
}
