package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/perfumaria/catalog-api/internal/platform/httpx"
	"github.com/perfumaria/catalog-api/internal/shared"
)

// Middleware gates protected routes behind bearer token verification.
type Middleware struct {
	logger *slog.Logger
	tokens *TokenManager
}

// NewMiddleware constructs a Middleware instance.
func NewMiddleware(logger *slog.Logger, tokens *TokenManager) *Middleware {
	return &Middleware{logger: logger, tokens: tokens}
}

// RequireAuth verifies the Authorization header and stores the caller
// identity in the request context. A missing, invalid or expired token
// short-circuits with 401 before any handler logic runs.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			httpx.Unauthenticated(w)
			return
		}

		claims, err := m.tokens.Verify(r.Context(), tokenString)
		if err != nil {
			if m.logger != nil && !errors.Is(err, shared.ErrUnauthenticated) {
				m.logger.Warn("token verification", slog.Any("error", err))
			}
			httpx.Unauthenticated(w)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			httpx.Unauthenticated(w)
			return
		}

		identity := shared.Identity{
			UserID:    userID,
			TokenID:   claims.ID,
			ExpiresAt: claims.ExpiresAt.Time,
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(r.Context(), identity)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
