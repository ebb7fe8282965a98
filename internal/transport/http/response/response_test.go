package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopit/account-service/internal/domain"
)

func TestWriteError_DomainErrorMapsKindToStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrMissingField("email"), http.StatusBadRequest},
		{domain.ErrInvalidCredentials(), http.StatusUnauthorized},
		{domain.ErrInsufficientRole("admin"), http.StatusForbidden},
		{domain.ErrUserNotFound(), http.StatusNotFound},
		{domain.ErrEmailAlreadyExists(), http.StatusConflict},
		{domain.ErrDBUnavailable(nil), http.StatusServiceUnavailable},
		{domain.ErrEmailDeliveryFailed(nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		WriteError(rec, r, tc.err)
		if rec.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}

func TestWriteError_NonDomainErrorIsOpaque500(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(rec, r, errors.New("pq: connection refused to 10.0.0.5"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "internal_error" || body.Error.Message != "internal error" {
		t.Fatalf("internal detail leaked: %+v", body.Error)
	}
}

func TestOKAndCreated_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"k": "v"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.Data["k"] != "v" {
		t.Fatalf("bad envelope: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	Created(rec, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c"}`))
		var dst struct {
			Email string `json:"email"`
		}
		if err := DecodeJSON(r, &dst); err != nil || dst.Email != "a@b.c" {
			t.Fatalf("decode failed: %v %+v", err, dst)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
		var dst struct{}
		if err := DecodeJSON(r, &dst); !domain.Is(err, "invalid_json") {
			t.Fatalf("expected invalid_json, got %v", err)
		}
	})

	t.Run("trailing_values", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}{}`))
		var dst struct{}
		if err := DecodeJSON(r, &dst); !domain.Is(err, "invalid_json") {
			t.Fatalf("expected invalid_json, got %v", err)
		}
	})
}
