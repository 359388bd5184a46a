package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// --- GET /api/dashboard/stats ---

func TestStatsHandler_Stats_ReturnsCounts(t *testing.T) {
	manager := testManager()
	svc := &mockStatsService{
		dashboardFn: func(ctx context.Context, caller *model.User) (*model.DashboardStats, error) {
			return &model.DashboardStats{
				TotalTeamMembers: 2,
				TotalFeedback:    5,
				RecentFeedback:   3,
				SentimentDist: model.SentimentDistribution{
					Positive: 3,
					Neutral:  1,
					Negative: 1,
				},
			}, nil
		},
	}
	h := NewStatsHandler(svc, userLoaderFor(manager))

	req := authedRequest(http.MethodGet, "/api/dashboard/stats", manager.ID, nil)
	w := httptest.NewRecorder()
	h.Stats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp model.DashboardStats
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalTeamMembers != 2 {
		t.Errorf("total_team_members = %d, want 2", resp.TotalTeamMembers)
	}
	if resp.SentimentDist.Positive != 3 {
		t.Errorf("positive = %d, want 3", resp.SentimentDist.Positive)
	}
}

func TestStatsHandler_Stats_AccessDeniedForEmployee(t *testing.T) {
	employee := testEmployee()
	svc := &mockStatsService{
		dashboardFn: func(ctx context.Context, caller *model.User) (*model.DashboardStats, error) {
			return nil, model.NewAccessDeniedError()
		},
	}
	h := NewStatsHandler(svc, userLoaderFor(employee))

	req := authedRequest(http.MethodGet, "/api/dashboard/stats", employee.ID, nil)
	w := httptest.NewRecorder()
	h.Stats(w, req)

	assertErrorCode(t, w, http.StatusForbidden, model.ErrCodeAccessDenied)
}
