package postgres

import (
	"database/sql"
	"time"
)

// userRow mirrors the users table. Reset columns are nullable and always
// written as a pair.
type userRow struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string
	Role                string
	ResetTokenHash      sql.NullString
	ResetTokenExpiresAt sql.NullTime
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
