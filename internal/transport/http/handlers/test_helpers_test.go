package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopit/account-service/internal/account"
	"github.com/shopit/account-service/internal/infrastructure/memory"
	"github.com/shopit/account-service/internal/infrastructure/security"
	"github.com/shopit/account-service/internal/transport/http/middleware"
	"github.com/shopit/account-service/internal/transport/http/response"
	"github.com/shopit/account-service/internal/transport/http/router"
)

// capturePublisher records password-reset events instead of talking to a broker.
type capturePublisher struct {
	events []account.PasswordResetEvent
	err    error
}

func (p *capturePublisher) PublishPasswordReset(ctx context.Context, evt account.PasswordResetEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

// testEnv wires the full HTTP stack against in-memory infrastructure.
type testEnv struct {
	handler http.Handler
	repo    *memory.UserRepo
	pub     *capturePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := memory.NewUserRepo()
	pub := &capturePublisher{}
	signer := security.NewJWTSigner("test-secret", "account-service")
	hasher := security.NewBcryptHasher(4) // lower cost for test speed

	svc := account.NewService(repo, hasher, signer, pub, account.Config{
		SessionTTL:      time.Hour,
		ResetTokenTTL:   30 * time.Minute,
		FrontendBaseURL: "https://shop.example.com",
	})

	acct := NewAccountHandler(svc, time.Hour, false)
	health := NewHealthHandler(nil)

	h, err := router.New(router.Deps{
		Health:  health,
		Account: acct,
		AuthMW:  middleware.Auth(signer, response.WriteError),
		UserMW:  middleware.RequireRole(repo, response.WriteError, "user", "admin"),
		AdminMW: middleware.RequireRole(repo, response.WriteError, "admin"),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	return &testEnv{handler: h, repo: repo, pub: pub}
}

// doJSON fires a request against the router; token (if set) goes in the
// Authorization header.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// mustReadData decodes the {"data": ...} envelope into out.
func mustReadData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	wrapped := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &wrapped); err != nil || len(wrapped.Data) == 0 {
		t.Fatalf("decode envelope failed; body=%s", rec.Body.String())
	}
	if err := json.Unmarshal(wrapped.Data, out); err != nil {
		t.Fatalf("decode data failed; body=%s err=%v", rec.Body.String(), err)
	}
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body failed; body=%s", rec.Body.String())
	}
	return body.Error.Code
}

type authPayload struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Session struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresIn int64  `json:"expires_in"`
	} `json:"session"`
}

// register creates a user through the API and returns the auth payload.
func (e *testEnv) register(t *testing.T, name, email, password string) authPayload {
	t.Helper()

	rec := e.doJSON(t, http.MethodPost, "/api/v1/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}

	var out authPayload
	mustReadData(t, rec, &out)
	return out
}

// registerAdmin registers a user and flips the stored role to admin, then
// logs in again so the token claims match.
func (e *testEnv) registerAdmin(t *testing.T, email, password string) authPayload {
	t.Helper()

	out := e.register(t, "Admin", email, password)
	role := "admin"
	if _, err := e.repo.Update(context.Background(), out.User.ID, account.UserUpdate{Role: &role}); err != nil {
		t.Fatalf("promote admin: %v", err)
	}

	rec := e.doJSON(t, http.MethodPost, "/api/v1/login", map[string]string{
		"email": email, "password": password,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", rec.Code, rec.Body.String())
	}
	var relog authPayload
	mustReadData(t, rec, &relog)
	return relog
}

// resetTokenFromURL pulls the plaintext token out of the emailed reset link.
func resetTokenFromURL(t *testing.T, url string) string {
	t.Helper()

	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		t.Fatalf("no token in url %q", url)
	}
	return url[idx+1:]
}

// readCookie finds cookie by name from response headers.
func readCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
