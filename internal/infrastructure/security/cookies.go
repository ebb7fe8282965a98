package security

import (
	"net/http"
	"time"
)

// SessionCookieName matches the cookie the frontend already expects.
const SessionCookieName = "token"

func SetSessionToken(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	name := SessionCookieName
	if secure {
		name = "__Host-" + SessionCookieName
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure, // prod=true, dev=false
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionToken overwrites the cookie with an already-expired empty value.
func ClearSessionToken(w http.ResponseWriter, secure bool) {
	name := SessionCookieName
	if secure {
		name = "__Host-" + SessionCookieName
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func ReadSessionToken(r *http.Request) (string, error) {
	// Prefer the secure-prefixed cookie when present.
	if c, err := r.Cookie("__Host-" + SessionCookieName); err == nil {
		return c.Value, nil
	}
	// Fallback (local non-HTTPS development).
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
