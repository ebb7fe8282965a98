package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	// Registration / session
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)

	// Password reset
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)

	// Authenticated profile
	Me(w http.ResponseWriter, r *http.Request)
	UpdatePassword(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)

	// Admin user management
	AdminListUsers(w http.ResponseWriter, r *http.Request)
	AdminGetUser(w http.ResponseWriter, r *http.Request)
	AdminUpdateUser(w http.ResponseWriter, r *http.Request)
	AdminDeleteUser(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Account AccountHandler

	AuthMW  func(http.Handler) http.Handler
	UserMW  func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Account == nil {
		return nil, fmt.Errorf("nil Account handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.UserMW == nil {
		return nil, fmt.Errorf("nil User middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	r := chi.NewRouter()
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public ---
		r.Post("/register", deps.Account.Register)
		r.Post("/login", deps.Account.Login)
		r.Get("/logout", deps.Account.Logout)
		r.Post("/password/forgot", deps.Account.ForgotPassword)
		r.Put("/password/reset/{token}", deps.Account.ResetPassword)

		// --- Authenticated (any role) ---
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Use(deps.UserMW)

			r.Get("/me", deps.Account.Me)
			r.Put("/me/update", deps.Account.UpdateProfile)
			r.Put("/password/update", deps.Account.UpdatePassword)
		})

		// --- Admin (privileged) ---
		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Use(deps.AdminMW)

			r.Get("/users", deps.Account.AdminListUsers)
			r.Get("/users/{id}", deps.Account.AdminGetUser)
			r.Put("/users/{id}", deps.Account.AdminUpdateUser)
			r.Delete("/users/{id}", deps.Account.AdminDeleteUser)
		})
	})

	return r, nil
}
