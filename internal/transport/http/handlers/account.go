package http_handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shopit/account-service/internal/account"
	"github.com/shopit/account-service/internal/domain"
	"github.com/shopit/account-service/internal/infrastructure/security"
	"github.com/shopit/account-service/internal/logger"
	"github.com/shopit/account-service/internal/transport/http/dto"
	"github.com/shopit/account-service/internal/transport/http/middleware"
	"github.com/shopit/account-service/internal/transport/http/response"
)

type AccountHandler struct {
	svc           *account.Service
	sessionTTL    time.Duration
	secureCookies bool
}

func NewAccountHandler(svc *account.Service, sessionTTL time.Duration, secureCookies bool) *AccountHandler {
	return &AccountHandler{
		svc:           svc,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

func (h *AccountHandler) authData(res account.AuthResult) dto.AuthData {
	return dto.AuthData{
		User: dto.NewUserView(res.User),
		Session: dto.SessionView{
			Token:     res.Session.Token,
			TokenType: "Bearer",
			ExpiresIn: res.Session.ExpiresIn,
		},
	}
}

// ---- registration / session ----

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	security.SetSessionToken(w, res.Session.Token, h.sessionTTL, h.secureCookies)
	response.Created(w, h.authData(res))
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	security.SetSessionToken(w, res.Session.Token, h.sessionTTL, h.secureCookies)
	response.OK(w, h.authData(res))
}

// Logout is stateless: the session token carries its own expiry, so logging
// out only clears the cookie. Always succeeds, even without a session.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionToken(w, h.secureCookies)
	response.OK(w, dto.StatusData{Status: "ok"})
}

// ---- password reset ----

func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("email", req.Email).
		Msg("password_reset_requested")

	response.OK(w, dto.StatusData{Status: "ok"})
}

func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(chi.URLParam(r, "token"))
	if token == "" {
		response.WriteError(w, r, domain.ErrResetTokenInvalid())
		return
	}

	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ResetPassword(r.Context(), token, req.Password, req.ConfirmPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("password_reset_completed")

	security.SetSessionToken(w, res.Session.Token, h.sessionTTL, h.secureCookies)
	response.OK(w, h.authData(res))
}

// ---- authenticated profile ----

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}

func (h *AccountHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.UpdatePasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.UpdatePassword(r.Context(), userID, req.OldPassword, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", userID).
		Msg("password_changed")

	security.SetSessionToken(w, res.Session.Token, h.sessionTTL, h.secureCookies)
	response.OK(w, h.authData(res))
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.UpdateProfileRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), userID, req.Name, req.Email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}

// ---- admin ----

func (h *AccountHandler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	views := dto.NewUserViews(users)
	response.OK(w, dto.UsersData{Users: views, Count: len(views)})
}

func (h *AccountHandler) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	targetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if targetID == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	u, err := h.svc.GetUser(r.Context(), targetID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}

func (h *AccountHandler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	targetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if targetID == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	var req dto.AdminUpdateUserRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.AdminUpdateUser(r.Context(), targetID, req.Name, req.Email, req.Role)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	logger.WithCtx(r.Context()).Info().
		Str("actor_id", actorID).
		Str("user_id", u.ID).
		Msg("admin_user_updated")

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}

func (h *AccountHandler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	targetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if targetID == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	if err := h.svc.DeleteUser(r.Context(), targetID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	actorID, _ := middleware.UserIDFromContext(r.Context())
	logger.WithCtx(r.Context()).Info().
		Str("actor_id", actorID).
		Str("user_id", targetID).
		Msg("admin_user_deleted")

	response.NoContent(w)
}
