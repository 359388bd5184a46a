package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Divyansh670/FeedbackHub/internal/middleware"
	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// AuthService is the authentication surface the handlers need.
// Implemented by auth.Service.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// AuthMetrics records login outcomes. May be nil.
type AuthMetrics interface {
	RecordLoginSuccess()
	RecordLoginFailure()
}

// AuthHandler serves the /api/auth endpoints.
type AuthHandler struct {
	service AuthService
	metrics AuthMetrics
}

// NewAuthHandler creates an AuthHandler. metrics may be nil in tests.
func NewAuthHandler(service AuthService, metrics AuthMetrics) *AuthHandler {
	return &AuthHandler{service: service, metrics: metrics}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingCredentialsError())
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordLoginFailure()
		}
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLoginSuccess()
	}
	writeJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Logout handles POST /api/auth/logout.
// Registered outside the auth middleware so a token whose session is already
// gone can still be logged out without a 401.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/auth/me. It resolves the bearer token to the current
// user, which the client uses to restore a persisted session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
