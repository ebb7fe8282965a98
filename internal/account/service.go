package account

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/shopit/account-service/internal/domain"
)

const resetEmailSubject = "ShopIT Password Recovery"

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
	pub    EmailPublisher

	sessionTTL      time.Duration
	resetTokenTTL   time.Duration
	frontendBaseURL string

	now func() time.Time
}

type Config struct {
	SessionTTL      time.Duration
	ResetTokenTTL   time.Duration
	FrontendBaseURL string
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	pub EmailPublisher,
	cfg Config,
) *Service {
	resetTTL := cfg.ResetTokenTTL
	if resetTTL <= 0 {
		resetTTL = 30 * time.Minute
	}
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
		pub:    pub,

		sessionTTL:      cfg.SessionTTL,
		resetTokenTTL:   resetTTL,
		frontendBaseURL: cfg.FrontendBaseURL,

		now: time.Now,
	}
}

// Session is the token output for handlers/DTO mapping.
type Session struct {
	Token     string
	ExpiresIn int64 // seconds
}

// AuthResult pairs a user with a freshly issued session.
type AuthResult struct {
	User    domain.User
	Session Session
}

// issueSession signs a session token for a user. Nothing is stored
// server-side; the token itself carries identity and expiry.
func (s *Service) issueSession(userID, role string) (Session, error) {
	tok, err := s.signer.SignSessionToken(userID, role, s.sessionTTL)
	if err != nil {
		return Session{}, domain.ErrTokenSignFailed(err)
	}
	return Session{
		Token:     tok,
		ExpiresIn: int64(s.sessionTTL.Seconds()),
	}, nil
}

// newResetToken returns a fresh plaintext reset token and its storable hash.
// 20 bytes of randomness, hex encoded; the hash is a fast sha256 digest, which
// is enough for a single-use short-lived secret (unlike the password hash).
func newResetToken() (plaintext string, hash string, err error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	plaintext = hex.EncodeToString(b)
	return plaintext, hashResetToken(plaintext), nil
}

func hashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// resetURL builds the link embedded in the recovery email.
func (s *Service) resetURL(token string) string {
	return s.frontendBaseURL + "/password/reset/" + token
}
