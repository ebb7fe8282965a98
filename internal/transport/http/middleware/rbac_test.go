package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopit/account-service/internal/domain"
	"github.com/shopit/account-service/internal/transport/http/response"
)

type fakeUserReader struct {
	users map[string]domain.User
	err   error
}

func (f *fakeUserReader) GetByID(ctx context.Context, id string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func requestAs(userID, role string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	return r.WithContext(WithUser(r.Context(), userID, role))
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	t.Parallel()

	users := &fakeUserReader{users: map[string]domain.User{
		"a1": {ID: "a1", Role: "admin"},
	}}
	mw := RequireRole(users, response.WriteError, "admin")

	called := false
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rec, requestAs("a1", "admin"))

	if !called {
		t.Fatalf("handler should run, got status %d", rec.Code)
	}
}

func TestRequireRole_WrongRoleIsForbidden(t *testing.T) {
	t.Parallel()

	users := &fakeUserReader{users: map[string]domain.User{
		"u1": {ID: "u1", Role: "user"},
	}}
	mw := RequireRole(users, response.WriteError, "admin")

	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	})).ServeHTTP(rec, requestAs("u1", "user"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_DeletedUserIsUnauthorized(t *testing.T) {
	t.Parallel()

	users := &fakeUserReader{users: map[string]domain.User{}}
	mw := RequireRole(users, response.WriteError, "user", "admin")

	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	})).ServeHTTP(rec, requestAs("ghost", "user"))

	// Token is valid but the account is gone: 401, not 403.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_StoredRoleWinsOverTokenRole(t *testing.T) {
	t.Parallel()

	// Token still claims admin, but the stored role was demoted to user.
	users := &fakeUserReader{users: map[string]domain.User{
		"u1": {ID: "u1", Role: "user"},
	}}
	mw := RequireRole(users, response.WriteError, "admin")

	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	})).ServeHTTP(rec, requestAs("u1", "admin"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_MissingIdentity(t *testing.T) {
	t.Parallel()

	users := &fakeUserReader{}
	mw := RequireRole(users, response.WriteError, "user")

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	})).ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_InfrastructureErrorPropagates(t *testing.T) {
	t.Parallel()

	users := &fakeUserReader{err: domain.ErrDBUnavailable(nil)}
	mw := RequireRole(users, response.WriteError, "user")

	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	})).ServeHTTP(rec, requestAs("u1", "user"))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
