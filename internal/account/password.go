package account

import (
	"context"

	"github.com/shopit/account-service/internal/domain"
)

// ForgotPassword attaches a fresh reset token to the user and hands the reset
// link to the email transport. Only the token's hash and expiry are persisted;
// the plaintext leaves the process exactly once, inside the email event.
//
// If delivery fails the token fields are rolled back before the error is
// surfaced: a valid-but-undeliverable token must not stay active.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, tokenHash, err := newResetToken()
	if err != nil {
		return domain.ErrRandomFailed(err)
	}

	expiresAt := s.now().Add(s.resetTokenTTL)
	if err := s.users.SetResetToken(ctx, u.ID, tokenHash, expiresAt); err != nil {
		return err
	}

	evt := PasswordResetEvent{
		UserID:  u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Subject: resetEmailSubject,
		URL:     s.resetURL(token),
	}
	if err := s.pub.PublishPasswordReset(ctx, evt); err != nil {
		// Roll back before reporting; a rollback failure is secondary to the
		// delivery failure (the token still dies with its expiry).
		_ = s.users.ClearResetToken(ctx, u.ID)
		return domain.ErrEmailDeliveryFailed(err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets a new password. The token is
// single-use: the repository update that stores the new hash clears the reset
// fields in the same write.
func (s *Service) ResetPassword(ctx context.Context, token, password, confirmPassword string) (AuthResult, error) {
	if token == "" {
		return AuthResult{}, domain.ErrMissingField("token")
	}
	if password == "" {
		return AuthResult{}, domain.ErrMissingField("password")
	}

	u, err := s.users.GetByResetTokenHash(ctx, hashResetToken(token))
	if err != nil {
		return AuthResult{}, domain.ErrResetTokenInvalid()
	}

	if password != confirmPassword {
		return AuthResult{}, domain.ErrPasswordMismatch()
	}

	newHash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, domain.ErrHashFailed(err)
	}

	if err := s.users.ResetPassword(ctx, u.ID, newHash); err != nil {
		return AuthResult{}, err
	}

	sess, err := s.issueSession(u.ID, u.Role)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: u, Session: sess}, nil
}

// UpdatePassword changes the password for an authenticated user after
// re-verifying the old one, then issues a fresh session.
func (s *Service) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) (AuthResult, error) {
	if userID == "" {
		return AuthResult{}, domain.ErrTokenMissing()
	}
	if oldPassword == "" || newPassword == "" {
		return AuthResult{}, domain.ErrMissingField("password")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return AuthResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, oldPassword); err != nil {
		return AuthResult{}, domain.ErrInvalidCredentials()
	}

	// Always re-hash; bcrypt re-salts so the stored value changes even when
	// the new password equals the old one.
	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return AuthResult{}, domain.ErrHashFailed(err)
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return AuthResult{}, err
	}

	sess, err := s.issueSession(u.ID, u.Role)
	if err != nil {
		return AuthResult{}, err
	}

	u.PasswordHash = newHash
	return AuthResult{User: u, Session: sess}, nil
}
