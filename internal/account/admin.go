package account

import (
	"context"
	"strings"

	"github.com/shopit/account-service/internal/domain"
)

// Admin use cases. Role gating happens at the transport layer; these methods
// assume the caller has already passed the admin gate.

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) GetUser(ctx context.Context, userID string) (domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	return s.users.GetByID(ctx, userID)
}

// AdminUpdateUser updates name/email/role of an arbitrary user.
func (s *Service) AdminUpdateUser(ctx context.Context, userID, name, email, role string) (domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	role = strings.TrimSpace(role)

	upd := UserUpdate{}
	if name != "" {
		upd.Name = &name
	}
	if email != "" {
		upd.Email = &email
	}
	if role != "" {
		if !domain.IsValidRole(role) {
			return domain.User{}, domain.ErrInvalidRole(role)
		}
		upd.Role = &role
	}

	return s.users.Update(ctx, userID, upd)
}

func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingField("id")
	}
	return s.users.Delete(ctx, userID)
}
