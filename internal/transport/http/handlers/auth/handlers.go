package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	domainauth "github.com/Suvo-Ghosh/EMS/internal/domain/auth"
	"github.com/Suvo-Ghosh/EMS/internal/transport/http/api"
	"github.com/Suvo-Ghosh/EMS/internal/transport/http/middleware"
)

type Handler struct {
	Service *domainauth.Service
}

func NewHandler(service *domainauth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/request-reset", h.handleRequestReset)
		r.Post("/reset", h.handleReset)
	})
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  userBrief `json:"user"`
}

type userBrief struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body must be valid JSON", reqID)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", reqID)
		return
	}

	token, user, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, domainauth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
			return
		}
		slog.Error("auth login failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal", "something went wrong", reqID)
		return
	}

	api.Success(w, loginResponse{
		Token: token,
		User: userBrief{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, reqID)
}

type requestResetPayload struct {
	Email string `json:"email"`
}

// handleRequestReset replies with the same message whether or not the
// email exists, so the endpoint cannot be used to probe for accounts.
func (h *Handler) handleRequestReset(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload requestResetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email is required", reqID)
		return
	}

	if err := h.Service.RequestReset(r.Context(), payload.Email); err != nil {
		slog.Error("auth request-reset failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal", "something went wrong", reqID)
		return
	}

	api.Success(w, map[string]string{
		"message": "if the account exists, a reset code has been sent",
	}, reqID)
}

type resetPayload struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload resetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body must be valid JSON", reqID)
		return
	}
	if payload.Email == "" || payload.OTP == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and otp are required", reqID)
		return
	}
	if len(payload.NewPassword) < 8 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "password must be at least 8 characters", reqID)
		return
	}

	if err := h.Service.ResetPassword(r.Context(), payload.Email, payload.OTP, payload.NewPassword); err != nil {
		if errors.Is(err, domainauth.ErrInvalidOTP) {
			api.Fail(w, http.StatusBadRequest, "invalid_otp", "invalid or expired reset code", reqID)
			return
		}
		slog.Error("auth reset failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal", "something went wrong", reqID)
		return
	}

	api.Success(w, map[string]string{"message": "password updated"}, reqID)
}
