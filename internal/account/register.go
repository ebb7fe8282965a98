package account

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shopit/account-service/internal/domain"
)

func (s *Service) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return AuthResult{}, domain.ErrMissingField("name")
	}
	if email == "" {
		return AuthResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return AuthResult{}, domain.ErrMissingField("password")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleUser),
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		// Duplicate email surfaces from the repository as a conflict.
		return AuthResult{}, err
	}

	sess, err := s.issueSession(created.ID, created.Role)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: created, Session: sess}, nil
}
