// Package stats aggregates the manager dashboard counts.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/Divyansh670/FeedbackHub/internal/model"
	"github.com/Divyansh670/FeedbackHub/internal/repository"
)

// recentWindow is how far back a feedback record still counts as recent.
const recentWindow = 30 * 24 * time.Hour

// Service implements the dashboard stats logic.
type Service struct {
	feedbackRepo repository.FeedbackRepository
	now          func() time.Time
}

// NewService creates a Service.
func NewService(feedbackRepo repository.FeedbackRepository) *Service {
	return &Service{
		feedbackRepo: feedbackRepo,
		now:          time.Now,
	}
}

// Dashboard returns the aggregate counts for the caller's team and feedback.
// Manager-only; employees derive their own counts from their feedback list.
func (s *Service) Dashboard(ctx context.Context, caller *model.User) (*model.DashboardStats, error) {
	if caller.Role != model.RoleManager {
		return nil, model.NewAccessDeniedError()
	}

	stats, err := s.feedbackRepo.Stats(ctx, caller.ID, s.now().Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	return stats, nil
}
