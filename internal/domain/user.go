package domain

import "time"

// User is the account record. PasswordHash is loaded by the repository but
// must never appear in any read-facing projection (DTOs omit it).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string

	// Outstanding password-reset state. Either both fields are set (a reset
	// is pending) or both are zero. Never written individually.
	ResetTokenHash      string
	ResetTokenExpiresAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPendingReset reports whether a reset token is outstanding and still
// inside its validity window at the given instant.
func (u User) HasPendingReset(now time.Time) bool {
	return u.ResetTokenHash != "" && u.ResetTokenExpiresAt.After(now)
}
