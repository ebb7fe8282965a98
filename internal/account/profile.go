package account

import (
	"context"
	"strings"

	"github.com/shopit/account-service/internal/domain"
)

func (s *Service) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile updates the caller's own name/email. Role and password are
// untouchable through this path.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, email string) (domain.User, error) {
	if userID == "" {
		return domain.User{}, domain.ErrTokenMissing()
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	upd := UserUpdate{}
	if name != "" {
		upd.Name = &name
	}
	if email != "" {
		upd.Email = &email
	}

	return s.users.Update(ctx, userID, upd)
}
