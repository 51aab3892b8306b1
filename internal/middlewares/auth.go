package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/todo-tracker/internal/jwt"
	"github.com/sbilibin2017/todo-tracker/internal/logger"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware returns a middleware that validates the bearer token and stores
// its claims in the request context.
// A request without a token is rejected with 401, a bad or expired token with 403.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Debugw("authorization failed", "err", err)
				if errors.Is(err, jwt.ErrMissingAuthHeader) {
					writeError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				writeError(w, http.StatusForbidden, "Invalid token")
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Debugw("authorization failed", "err", err)
				writeError(w, http.StatusForbidden, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.WithClaims(ctx, claims)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
