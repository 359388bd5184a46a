// Package feedback provides the feedback domain logic: submission, listing,
// updates and employee acknowledgment.
package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Divyansh670/FeedbackHub/internal/model"
	"github.com/Divyansh670/FeedbackHub/internal/repository"
	"github.com/Divyansh670/FeedbackHub/internal/security"
)

// Metrics is the subset of metric recording the service uses.
type Metrics interface {
	RecordFeedbackSubmitted(sentiment model.Sentiment)
	RecordFeedbackAcknowledged()
}

// Service implements the feedback business logic.
type Service struct {
	feedbackRepo repository.FeedbackRepository
	userRepo     repository.UserRepository
	sanitizer    security.FeedbackSanitizer
	metrics      Metrics
}

// NewService creates a Service. metrics may be nil in tests.
func NewService(
	feedbackRepo repository.FeedbackRepository,
	userRepo repository.UserRepository,
	sanitizer security.FeedbackSanitizer,
	metrics Metrics,
) *Service {
	return &Service{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		sanitizer:    sanitizer,
		metrics:      metrics,
	}
}

// List returns the feedback visible to the caller: authored records for a
// manager, received records for an employee. Newest first.
func (s *Service) List(ctx context.Context, caller *model.User) ([]*model.Feedback, error) {
	switch caller.Role {
	case model.RoleManager:
		return s.feedbackRepo.ListByManager(ctx, caller.ID)
	case model.RoleEmployee:
		return s.feedbackRepo.ListByEmployee(ctx, caller.ID)
	default:
		return nil, model.NewInvalidRoleError(string(caller.Role))
	}
}

// Submit creates a feedback record from the manager's submission.
// Only managers may submit, and only about their own direct reports.
// Text fields are sanitized to plain text before storage.
func (s *Service) Submit(ctx context.Context, caller *model.User, sub *model.FeedbackSubmission) (*model.Feedback, error) {
	if caller.Role != model.RoleManager {
		return nil, model.NewAccessDeniedError()
	}

	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	managed, err := s.userRepo.IsDirectReport(ctx, caller.ID, sub.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check direct report: %w", err)
	}
	if !managed {
		return nil, model.NewEmployeeNotManagedError(sub.EmployeeID)
	}

	now := time.Now()
	fb := &model.Feedback{
		ID:             uuid.New().String(),
		ManagerID:      caller.ID,
		EmployeeID:     sub.EmployeeID,
		Strengths:      s.sanitizer.Sanitize(sub.Strengths),
		AreasToImprove: s.sanitizer.Sanitize(sub.AreasToImprove),
		Sentiment:      sub.Sentiment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordFeedbackSubmitted(fb.Sentiment)
	}

	slog.Info("feedback submitted",
		slog.String("feedback_id", fb.ID),
		slog.String("manager_id", caller.ID),
		slog.String("employee_id", fb.EmployeeID),
		slog.String("sentiment", string(fb.Sentiment)),
	)

	return fb, nil
}

// Update rewrites an existing record's text and sentiment.
// Only the authoring manager may update; a foreign or missing record reports
// not-found either way. The acknowledgment timestamp is never touched.
func (s *Service) Update(ctx context.Context, caller *model.User, feedbackID string, sub *model.FeedbackSubmission) (*model.Feedback, error) {
	existing, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	if existing == nil || existing.ManagerID != caller.ID {
		return nil, model.NewFeedbackNotFoundError(feedbackID)
	}

	if err := validateText(sub); err != nil {
		return nil, err
	}

	existing.Strengths = s.sanitizer.Sanitize(sub.Strengths)
	existing.AreasToImprove = s.sanitizer.Sanitize(sub.AreasToImprove)
	existing.Sentiment = sub.Sentiment
	existing.UpdatedAt = time.Now()

	if err := s.feedbackRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}

	slog.Info("feedback updated",
		slog.String("feedback_id", existing.ID),
		slog.String("manager_id", caller.ID),
	)

	return existing, nil
}

// Acknowledge sets the acknowledgment timestamp on a record addressed to the
// caller. One-shot: a record acknowledged earlier is a conflict, and the
// stored timestamp is never changed.
func (s *Service) Acknowledge(ctx context.Context, caller *model.User, feedbackID string) (*time.Time, error) {
	existing, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	if existing == nil || existing.EmployeeID != caller.ID {
		return nil, model.NewFeedbackNotFoundError(feedbackID)
	}

	at, err := s.feedbackRepo.Acknowledge(ctx, feedbackID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge feedback: %w", err)
	}
	if at == nil {
		return nil, model.NewAlreadyAcknowledgedError(feedbackID)
	}

	if s.metrics != nil {
		s.metrics.RecordFeedbackAcknowledged()
	}

	slog.Info("feedback acknowledged",
		slog.String("feedback_id", feedbackID),
		slog.String("employee_id", caller.ID),
	)

	return at, nil
}

// validateSubmission checks the full submission including the target employee.
func validateSubmission(sub *model.FeedbackSubmission) error {
	if sub.EmployeeID == "" {
		return model.NewMissingFieldError("employee_id")
	}
	return validateText(sub)
}

// validateText checks the free-text fields and the sentiment enum.
func validateText(sub *model.FeedbackSubmission) error {
	if sub.Strengths == "" {
		return model.NewMissingFieldError("strengths")
	}
	if sub.AreasToImprove == "" {
		return model.NewMissingFieldError("areas_to_improve")
	}
	if _, err := model.ParseSentiment(string(sub.Sentiment)); err != nil {
		return err
	}
	return nil
}
