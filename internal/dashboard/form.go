package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Divyansh670/FeedbackHub/internal/apiclient"
)

// ErrSubmitInFlight is returned when a submission is attempted while an
// earlier one has not finished.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// validSentiments is the closed sentiment set the form accepts.
var validSentiments = map[string]bool{
	"positive": true,
	"neutral":  true,
	"negative": true,
}

// FormAPI is the slice of the API client the form uses.
type FormAPI interface {
	SubmitFeedback(ctx context.Context, sub apiclient.FeedbackSubmission) (*apiclient.Feedback, error)
}

// Form is the feedback submission form for one target employee.
// Validation runs before any network call, and only one submission can be
// in flight at a time.
type Form struct {
	api        FormAPI
	employeeID string
	onSuccess  func(ctx context.Context) error

	submitting bool
}

// NewForm creates a Form targeting employeeID. onSuccess runs after a
// successful submit, typically to refresh the parent view; it may be nil.
func NewForm(api FormAPI, employeeID string, onSuccess func(ctx context.Context) error) *Form {
	return &Form{
		api:        api,
		employeeID: employeeID,
		onSuccess:  onSuccess,
	}
}

// Validate checks the field values locally. Whitespace-only text counts as
// empty.
func (f *Form) Validate(strengths, areasToImprove, sentiment string) error {
	if strings.TrimSpace(strengths) == "" {
		return fmt.Errorf("strengths is required")
	}
	if strings.TrimSpace(areasToImprove) == "" {
		return fmt.Errorf("areas to improve is required")
	}
	if !validSentiments[sentiment] {
		return fmt.Errorf("sentiment must be positive, neutral or negative")
	}
	return nil
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	return f.submitting
}

// Submit validates and sends the feedback. Validation failures never reach
// the network. On success the parent refresh callback runs before Submit
// returns.
func (f *Form) Submit(ctx context.Context, strengths, areasToImprove, sentiment string) (*apiclient.Feedback, error) {
	if f.submitting {
		return nil, ErrSubmitInFlight
	}
	if err := f.Validate(strengths, areasToImprove, sentiment); err != nil {
		return nil, err
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	created, err := f.api.SubmitFeedback(ctx, apiclient.FeedbackSubmission{
		EmployeeID:     f.employeeID,
		Strengths:      strengths,
		AreasToImprove: areasToImprove,
		Sentiment:      sentiment,
	})
	if err != nil {
		return nil, err
	}

	if f.onSuccess != nil {
		if err := f.onSuccess(ctx); err != nil {
			return created, fmt.Errorf("submitted, but refresh failed: %w", err)
		}
	}
	return created, nil
}
