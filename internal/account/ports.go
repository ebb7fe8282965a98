package account

import (
	"context"
	"time"

	"github.com/shopit/account-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the account service needs, not HOW it's stored.

Reset-token state is written strictly in pairs: SetResetToken stores
hash+expiry together, ClearResetToken removes both, and ResetPassword sets the
new password hash and clears both reset fields in the same update.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	// GetByResetTokenHash matches only users whose reset token has not expired.
	GetByResetTokenHash(ctx context.Context, tokenHash string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)

	// Updates needed by business flows
	Update(ctx context.Context, userID string, upd UserUpdate) (domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID string) error
	ResetPassword(ctx context.Context, userID string, newHash string) error
	Delete(ctx context.Context, userID string) error
}

// UserUpdate is a partial update; nil fields are left untouched. It carries no
// password on purpose: password changes go through the hashing use cases, so a
// stored hash can never be re-hashed.
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *string
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID string
	Role   string
	Exp    time.Time
}

type TokenSigner interface {
	SignSessionToken(userID string, role string, ttl time.Duration) (string, error)
	VerifySessionToken(token string) (TokenClaims, error)
}

/*
EmailPublisher
--------------
Outbound email transport. The service hands over a fully-shaped message; the
broker consumer does the actual SMTP delivery. A publish error means the email
will never be delivered and is surfaced as EmailDeliveryFailed.
*/
type EmailPublisher interface {
	PublishPasswordReset(ctx context.Context, evt PasswordResetEvent) error
}

// PasswordResetEvent is the message the email consumer turns into a reset
// mail. URL embeds the plaintext token; the token is never persisted.
type PasswordResetEvent struct {
	UserID  string
	Email   string
	Name    string
	Subject string
	URL     string
}
