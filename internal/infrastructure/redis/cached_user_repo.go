package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/shopit/account-service/internal/account"
	"github.com/shopit/account-service/internal/domain"
)

// CachedUserRepo decorates an account.UserRepo with a Redis cache for GetByID,
// the hot path behind every authenticated request (the role gate re-reads the
// user on each call).
// - Read path: Redis -> DB fallback -> Redis set
// - Write path: DB first, then best-effort cache set/del (never fail the write)
type CachedUserRepo struct {
	inner   account.UserRepo
	rdb     *goredis.Client
	ttl     time.Duration
	keyPref string
}

func NewCachedUserRepo(inner account.UserRepo, client *Client, ttl time.Duration) *CachedUserRepo {
	var rdb *goredis.Client
	if client != nil {
		rdb = client.rdb
	}
	return &CachedUserRepo{
		inner:   inner,
		rdb:     rdb,
		ttl:     ttl,
		keyPref: "user:",
	}
}

func (c *CachedUserRepo) key(userID string) string {
	return c.keyPref + userID
}

// cachedUser is the wire form in Redis. Reset fields stay out of the cache on
// purpose: the reset flow always reads the row by token hash from the DB.
type cachedUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *CachedUserRepo) setCached(ctx context.Context, u domain.User) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(cachedUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(u.ID), b, c.ttl).Err()
}

func (c *CachedUserRepo) dropCached(ctx context.Context, userID string) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.key(userID)).Err()
}

func (c *CachedUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	// 1) Try Redis
	if c.rdb != nil {
		s, err := c.rdb.Get(ctx, c.key(id)).Result()
		if err == nil {
			var cu cachedUser
			if uerr := json.Unmarshal([]byte(s), &cu); uerr == nil {
				return domain.User{
					ID:           cu.ID,
					Name:         cu.Name,
					Email:        cu.Email,
					PasswordHash: cu.PasswordHash,
					Role:         cu.Role,
					CreatedAt:    cu.CreatedAt,
					UpdatedAt:    cu.UpdatedAt,
				}, nil
			}
		}
		// miss, decode error or redis error -> fall back to DB (do NOT fail auth)
	}

	// 2) DB source of truth
	u, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	// 3) Best-effort cache fill
	c.setCached(ctx, u)
	return u, nil
}

func (c *CachedUserRepo) Update(ctx context.Context, userID string, upd account.UserUpdate) (domain.User, error) {
	u, err := c.inner.Update(ctx, userID, upd)
	if err != nil {
		return domain.User{}, err
	}
	// SET beats DEL: we already hold the fresh row.
	c.setCached(ctx, u)
	return u, nil
}

func (c *CachedUserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	if err := c.inner.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return err
	}
	c.dropCached(ctx, userID)
	return nil
}

func (c *CachedUserRepo) ResetPassword(ctx context.Context, userID string, newHash string) error {
	if err := c.inner.ResetPassword(ctx, userID, newHash); err != nil {
		return err
	}
	c.dropCached(ctx, userID)
	return nil
}

func (c *CachedUserRepo) Delete(ctx context.Context, userID string) error {
	if err := c.inner.Delete(ctx, userID); err != nil {
		return err
	}
	c.dropCached(ctx, userID)
	return nil
}

/*
Below: delegate the remaining account.UserRepo methods to inner.
Reset-token writes don't touch the cached fields, so no invalidation needed.
*/

func (c *CachedUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return c.inner.GetByEmail(ctx, email)
}
func (c *CachedUserRepo) GetByResetTokenHash(ctx context.Context, tokenHash string) (domain.User, error) {
	return c.inner.GetByResetTokenHash(ctx, tokenHash)
}
func (c *CachedUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return c.inner.Create(ctx, u)
}
func (c *CachedUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return c.inner.List(ctx)
}
func (c *CachedUserRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return c.inner.SetResetToken(ctx, userID, tokenHash, expiresAt)
}
func (c *CachedUserRepo) ClearResetToken(ctx context.Context, userID string) error {
	return c.inner.ClearResetToken(ctx, userID)
}
