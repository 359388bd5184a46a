package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Divyansh670/FeedbackHub/internal/middleware"
	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// FeedbackService is the feedback surface the handlers need.
// Implemented by feedback.Service.
type FeedbackService interface {
	List(ctx context.Context, caller *model.User) ([]*model.Feedback, error)
	Submit(ctx context.Context, caller *model.User, sub *model.FeedbackSubmission) (*model.Feedback, error)
	Update(ctx context.Context, caller *model.User, feedbackID string, sub *model.FeedbackSubmission) (*model.Feedback, error)
	Acknowledge(ctx context.Context, caller *model.User, feedbackID string) (*time.Time, error)
}

// UserLoader resolves an authenticated user ID to the full user.
// Implemented by auth.Service.
type UserLoader interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// FeedbackHandler serves the /api/feedback endpoints.
type FeedbackHandler struct {
	service FeedbackService
	users   UserLoader
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(service FeedbackService, users UserLoader) *FeedbackHandler {
	return &FeedbackHandler{service: service, users: users}
}

// caller resolves the authenticated user from the request context.
func caller(r *http.Request, users UserLoader) (*model.User, error) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		return nil, err
	}
	return users.GetUser(r.Context(), userID)
}

// List handles GET /api/feedback. Managers get the records they authored,
// employees the records addressed to them.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r, h.users)
	if err != nil {
		writeUnauthorized(w)
		return
	}

	records, err := h.service.List(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeedbackResponses(records))
}

// Submit handles POST /api/feedback.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r, h.users)
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var sub model.FeedbackSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldError("body"))
		return
	}

	created, err := h.service.Submit(r.Context(), user, &sub)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFeedbackResponse(created))
}

// Update handles PUT /api/feedback/{id}.
func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r, h.users)
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var sub model.FeedbackSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldError("body"))
		return
	}

	updated, err := h.service.Update(r.Context(), user, chi.URLParam(r, "id"), &sub)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFeedbackResponse(updated))
}

// Acknowledge handles POST /api/feedback/{id}/acknowledge.
func (h *FeedbackHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r, h.users)
	if err != nil {
		writeUnauthorized(w)
		return
	}

	at, err := h.service.Acknowledge(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AcknowledgeResponse{
		AcknowledgedAt: at.Format(time.RFC3339),
	})
}
