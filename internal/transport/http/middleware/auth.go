package middleware

import (
	"net/http"
	"strings"

	"github.com/shopit/account-service/internal/account"
	"github.com/shopit/account-service/internal/domain"
	"github.com/shopit/account-service/internal/infrastructure/security"
)

type TokenVerifier interface {
	VerifySessionToken(token string) (account.TokenClaims, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth accepts the session token from Authorization: Bearer <token> or from
// the session cookie (browser clients), verifies it, and injects the identity
// into request context.
func Auth(verifier TokenVerifier, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := tokenFromRequest(r)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			claims, err := verifier.VerifySessionToken(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			// Defensive checks
			if strings.TrimSpace(claims.UserID) == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			// Put identity into context for handlers.
			ctx := WithUser(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", domain.ErrTokenInvalid()
		}
		raw := strings.TrimSpace(parts[1])
		if raw == "" {
			return "", domain.ErrTokenInvalid()
		}
		return raw, nil
	}

	raw, err := security.ReadSessionToken(r)
	if err != nil || raw == "" {
		return "", domain.ErrTokenMissing()
	}
	return raw, nil
}
