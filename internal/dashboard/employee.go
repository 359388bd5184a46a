package dashboard

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Divyansh670/FeedbackHub/internal/apiclient"
)

// EmployeeAPI is the slice of the API client the employee view uses.
type EmployeeAPI interface {
	GetFeedback(ctx context.Context) ([]apiclient.Feedback, error)
	AcknowledgeFeedback(ctx context.Context, feedbackID string) error
}

// EmployeeView is the employee dashboard: the received feedback list with
// locally derived pending and acknowledged counts. The counts come from the
// list itself, not a separate endpoint, so they can never disagree with it.
type EmployeeView struct {
	api EmployeeAPI

	feedback []apiclient.Feedback
	loaded   bool
}

// NewEmployeeView creates an EmployeeView.
func NewEmployeeView(api EmployeeAPI) *EmployeeView {
	return &EmployeeView{api: api}
}

// Load fetches the received feedback.
func (v *EmployeeView) Load(ctx context.Context) error {
	feedback, err := v.api.GetFeedback(ctx)
	if err != nil {
		return fmt.Errorf("failed to load feedback: %w", err)
	}
	v.feedback = feedback
	v.loaded = true
	return nil
}

// Feedback returns the loaded records.
func (v *EmployeeView) Feedback() []apiclient.Feedback {
	return v.feedback
}

// AcknowledgedCount returns how many records have been acknowledged.
func (v *EmployeeView) AcknowledgedCount() int {
	count := 0
	for _, f := range v.feedback {
		if f.Acknowledged() {
			count++
		}
	}
	return count
}

// PendingCount returns how many records still await acknowledgment.
func (v *EmployeeView) PendingCount() int {
	return len(v.feedback) - v.AcknowledgedCount()
}

// CanAcknowledge reports whether the acknowledge action applies to the
// record. Once the timestamp is set the action disappears for good.
func (v *EmployeeView) CanAcknowledge(f *apiclient.Feedback) bool {
	return !f.Acknowledged()
}

// Acknowledge marks a record as read and reloads the list, so the rendered
// timestamp is the one the server stored rather than a local guess.
func (v *EmployeeView) Acknowledge(ctx context.Context, feedbackID string) error {
	for i := range v.feedback {
		if v.feedback[i].ID == feedbackID && v.feedback[i].Acknowledged() {
			return fmt.Errorf("feedback %s is already acknowledged", feedbackID)
		}
	}

	if err := v.api.AcknowledgeFeedback(ctx, feedbackID); err != nil {
		return err
	}
	return v.Load(ctx)
}

// Render writes the dashboard as text.
func (v *EmployeeView) Render(w io.Writer) {
	if !v.loaded {
		fmt.Fprintln(w, "Cannot display data right now.")
		return
	}

	fmt.Fprintln(w, "My Feedback")
	fmt.Fprintf(w, "Pending: %d  Acknowledged: %d\n", v.PendingCount(), v.AcknowledgedCount())
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range v.feedback {
		status := "acknowledge available"
		if f.Acknowledged() {
			status = "acknowledged " + *f.AcknowledgedAt
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.ManagerName, f.Sentiment, f.CreatedAt, status)
	}
	tw.Flush()
}
