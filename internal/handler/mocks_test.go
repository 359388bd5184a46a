package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Divyansh670/FeedbackHub/internal/middleware"
	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// --- Mock definitions ---

type mockAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (string, *model.User, error)
	logoutFn  func(ctx context.Context, token string) error
	getUserFn func(ctx context.Context, userID string) (*model.User, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return "", nil, model.NewInvalidCredentialsError()
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

func (m *mockAuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return nil, model.NewUserNotFoundError()
}

type mockFeedbackService struct {
	listFn        func(ctx context.Context, caller *model.User) ([]*model.Feedback, error)
	submitFn      func(ctx context.Context, caller *model.User, sub *model.FeedbackSubmission) (*model.Feedback, error)
	updateFn      func(ctx context.Context, caller *model.User, feedbackID string, sub *model.FeedbackSubmission) (*model.Feedback, error)
	acknowledgeFn func(ctx context.Context, caller *model.User, feedbackID string) (*time.Time, error)
}

func (m *mockFeedbackService) List(ctx context.Context, caller *model.User) ([]*model.Feedback, error) {
	if m.listFn != nil {
		return m.listFn(ctx, caller)
	}
	return nil, nil
}

func (m *mockFeedbackService) Submit(ctx context.Context, caller *model.User, sub *model.FeedbackSubmission) (*model.Feedback, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, caller, sub)
	}
	return nil, nil
}

func (m *mockFeedbackService) Update(ctx context.Context, caller *model.User, feedbackID string, sub *model.FeedbackSubmission) (*model.Feedback, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, caller, feedbackID, sub)
	}
	return nil, nil
}

func (m *mockFeedbackService) Acknowledge(ctx context.Context, caller *model.User, feedbackID string) (*time.Time, error) {
	if m.acknowledgeFn != nil {
		return m.acknowledgeFn(ctx, caller, feedbackID)
	}
	return nil, nil
}

type mockUserService struct {
	teamMembersFn func(ctx context.Context, caller *model.User) ([]*model.User, error)
}

func (m *mockUserService) TeamMembers(ctx context.Context, caller *model.User) ([]*model.User, error) {
	if m.teamMembersFn != nil {
		return m.teamMembersFn(ctx, caller)
	}
	return nil, nil
}

type mockStatsService struct {
	dashboardFn func(ctx context.Context, caller *model.User) (*model.DashboardStats, error)
}

func (m *mockStatsService) Dashboard(ctx context.Context, caller *model.User) (*model.DashboardStats, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, caller)
	}
	return nil, nil
}

// userLoaderFor returns a UserLoader that serves exactly one user.
func userLoaderFor(user *model.User) UserLoader {
	return &mockAuthService{
		getUserFn: func(ctx context.Context, userID string) (*model.User, error) {
			if userID == user.ID {
				return user, nil
			}
			return nil, model.NewUserNotFoundError()
		},
	}
}

// --- Test helpers ---

func testManager() *model.User {
	return &model.User{
		ID:        "mgr-1",
		Email:     "manager@company.com",
		Name:      "John Manager",
		Role:      model.RoleManager,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testEmployee() *model.User {
	managerID := "mgr-1"
	return &model.User{
		ID:        "emp-1",
		Email:     "employee@company.com",
		Name:      "Jane Employee",
		Role:      model.RoleEmployee,
		ManagerID: &managerID,
		CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func testFeedback() *model.Feedback {
	return &model.Feedback{
		ID:             "fb-1",
		ManagerID:      "mgr-1",
		EmployeeID:     "emp-1",
		Strengths:      "Clear communication",
		AreasToImprove: "Estimation accuracy",
		Sentiment:      model.SentimentPositive,
		CreatedAt:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		ManagerName:    "John Manager",
		EmployeeName:   "Jane Employee",
	}
}

func strReader(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) middleware.ErrorResponseBody {
	t.Helper()
	var body middleware.ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

// authedRequest builds a request whose context carries the given user ID.
func authedRequest(method, target, userID string, body *string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strReader(*body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// withURLParam injects a chi route parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	if w.Code != wantStatus {
		t.Errorf("status = %d, want %d", w.Code, wantStatus)
	}
	body := decodeErrorBody(t, w)
	if body.Code != wantCode {
		t.Errorf("code = %q, want %q", body.Code, wantCode)
	}
}
