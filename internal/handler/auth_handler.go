package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-tms-api/internal/middleware"
	"go-tms-api/internal/model"
	"go-tms-api/pkg/apierror"
)

type authService interface {
	Login(ctx context.Context, login string, password string, ttl time.Duration) (model.IssuedToken, error)
	Register(ctx context.Context, signup model.SignupRequest) (model.UserDTO, error)
	ChangePassword(ctx context.Context, principal *model.Principal, current string, next string) error
	Me(ctx context.Context, principal *model.Principal) (model.UserDTO, error)
}

type AuthHandler struct {
	service authService
}

func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login exchanges credentials for a bearer token. The optional expiresIn
// query parameter is the token lifetime in seconds.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ttl, err := parseExpiresIn(r.URL.Query().Get("expiresIn"))
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.LoginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(payload); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.service.Login(r.Context(), payload.Login, payload.Password, ttl)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.SignupRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(payload); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r)
	if !ok {
		writeError(w, apierror.Unauthorized())
		return
	}

	var payload model.ChangePasswordRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(payload); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), principal, payload.CurrentPassword, payload.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r)
	if !ok {
		writeError(w, apierror.Unauthorized())
		return
	}

	user, err := h.service.Me(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// parseExpiresIn returns 0 (the service default) when raw is empty.
func parseExpiresIn(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seconds < 0 {
		return 0, apierror.BadRequest("expiresIn must be a non-negative number of seconds", "expiresIn")
	}

	// Larger values are clamped by the token service anyway.
	const maxSeconds = int64(1<<63-1) / int64(time.Second)
	if seconds > maxSeconds {
		seconds = maxSeconds
	}

	return time.Duration(seconds) * time.Second, nil
}
