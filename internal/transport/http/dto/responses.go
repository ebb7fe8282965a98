package dto

import (
	"time"

	"github.com/shopit/account-service/internal/domain"
)

// UserView is the standard user payload. The password hash and reset fields
// never leave the service.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserViews(users []domain.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views
}

// SessionView is the session token payload. The same token also travels in an
// HttpOnly cookie for browser clients.
type SessionView struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"` // "Bearer"
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// AuthData is returned by register/login and both password-change flows.
type AuthData struct {
	User    UserView    `json:"user"`
	Session SessionView `json:"session"`
}

// MeData is returned by /me and profile updates.
type MeData struct {
	User UserView `json:"user"`
}

// UsersData is returned by the admin list endpoint.
type UsersData struct {
	Users []UserView `json:"users"`
	Count int        `json:"count"`
}

// StatusData is returned by endpoints with nothing else to say.
type StatusData struct {
	Status string `json:"status"` // "ok"
}
