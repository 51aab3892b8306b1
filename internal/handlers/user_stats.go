package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-tracker/internal/models"
)

//go:generate mockgen -source=user_stats.go -destination=mock_user_stats.go -package=handlers

// StatsGetter defines the interface that the service must implement.
type StatsGetter interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error)
}

// NewUserStatsHandler returns an HTTP handler reporting the caller's task counters.
// @Summary Get user stats
// @Description Returns username, email, totalTasks and completedTasks of the authenticated user
// @Tags user
// @Produce json
// @Success 200 {object} models.UserStats "User stats"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Invalid token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /user-stats [get]
// @Security BearerAuth
func NewUserStatsHandler(svc StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		stats, err := svc.GetStats(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
