package handler

import (
	"context"
	"net/http"

	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// StatsService is the dashboard stats surface the handlers need.
// Implemented by stats.Service.
type StatsService interface {
	Dashboard(ctx context.Context, caller *model.User) (*model.DashboardStats, error)
}

// StatsHandler serves the /api/dashboard endpoints.
type StatsHandler struct {
	service StatsService
	users   UserLoader
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(service StatsService, users UserLoader) *StatsHandler {
	return &StatsHandler{service: service, users: users}
}

// Stats handles GET /api/dashboard/stats. Manager-only.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, err := caller(r, h.users)
	if err != nil {
		writeUnauthorized(w)
		return
	}

	stats, err := h.service.Dashboard(r.Context(), user)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
