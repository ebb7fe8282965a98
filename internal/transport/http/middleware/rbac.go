package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopit/account-service/internal/domain"
)

// UserReader is the minimal interface the role gate needs to re-check the
// caller against the source of truth on every request.
type UserReader interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// RequireRole loads the caller's current record and verifies the role against
// the allowed set. A valid token for a deleted user fails here with 401; the
// stored role wins over whatever the token claims, so a demotion takes effect
// before the session expires.
// Assumes Auth() has already injected the identity into context.
func RequireRole(users UserReader, writeErr WriteErrFunc, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				// Middleware ordering issue (Auth not applied) or context missing
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if domain.Is(err, "user_not_found") {
					writeErr(w, r, domain.ErrTokenInvalid())
					return
				}
				writeErr(w, r, err)
				return
			}

			if !domain.RoleIn(u.Role, allowed...) {
				writeErr(w, r, domain.ErrInsufficientRole(strings.Join(allowed, ",")))
				return
			}

			// Refresh the context role with the stored one.
			ctx := WithUser(r.Context(), u.ID, u.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
