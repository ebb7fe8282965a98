package account

import (
	"context"
	"strings"

	"github.com/shopit/account-service/internal/domain"
)

// Login authenticates a user and issues a session.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	sess, err := s.issueSession(u.ID, u.Role)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: u, Session: sess}, nil
}
