package handler

import (
	"context"
	"net/http"

	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// UserService is the user surface the handlers need.
// Implemented by user.Service.
type UserService interface {
	TeamMembers(ctx context.Context, caller *model.User) ([]*model.User, error)
}

// UserHandler serves the /api/users endpoints.
type UserHandler struct {
	service UserService
	users   UserLoader
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(service UserService, users UserLoader) *UserHandler {
	return &UserHandler{service: service, users: users}
}

// Team handles GET /api/users/team. Manager-only.
func (h *UserHandler) Team(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r, h.users)
	if err != nil {
		writeUnauthorized(w)
		return
	}

	members, err := h.service.TeamMembers(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponses(members))
}
