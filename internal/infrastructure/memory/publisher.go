package memory

import (
	"context"
	"log"

	"github.com/shopit/account-service/internal/account"
)

type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishPasswordReset(ctx context.Context, evt account.PasswordResetEvent) error {
	log.Printf("[noop-pub] password reset: user_id=%s email=%s url=%s", evt.UserID, evt.Email, evt.URL)
	return nil
}
