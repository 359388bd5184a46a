package dashboard

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/Divyansh670/FeedbackHub/internal/apiclient"
)

// ManagerAPI is the slice of the API client the manager view uses.
type ManagerAPI interface {
	GetDashboardStats(ctx context.Context) (*apiclient.DashboardStats, error)
	GetTeamMembers(ctx context.Context) ([]apiclient.User, error)
	GetFeedback(ctx context.Context) ([]apiclient.Feedback, error)
}

// ManagerView is the manager dashboard: aggregate counts, the team roster
// and the authored feedback feed.
type ManagerView struct {
	api ManagerAPI

	stats    *apiclient.DashboardStats
	team     []apiclient.User
	feedback []apiclient.Feedback
	loaded   bool
}

// NewManagerView creates a ManagerView.
func NewManagerView(api ManagerAPI) *ManagerView {
	return &ManagerView{api: api}
}

// Load fetches stats, team and feedback concurrently. All-or-nothing: the
// first failure cancels the remaining fetches and no partial data is kept,
// so the view never renders counts from one call alongside a stale list
// from another.
func (v *ManagerView) Load(ctx context.Context) error {
	var (
		stats    *apiclient.DashboardStats
		team     []apiclient.User
		feedback []apiclient.Feedback
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = v.api.GetDashboardStats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		team, err = v.api.GetTeamMembers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		feedback, err = v.api.GetFeedback(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	v.stats = stats
	v.team = team
	v.feedback = feedback
	v.loaded = true
	return nil
}

// Stats returns the loaded aggregate counts, or nil before a successful Load.
func (v *ManagerView) Stats() *apiclient.DashboardStats {
	return v.stats
}

// Team returns the loaded team roster.
func (v *ManagerView) Team() []apiclient.User {
	return v.team
}

// Feedback returns the loaded feedback feed.
func (v *ManagerView) Feedback() []apiclient.Feedback {
	return v.feedback
}

// NewForm returns a submission form targeted at one of the manager's team
// members, wired to refresh this view on success.
func (v *ManagerView) NewForm(api FormAPI, employeeID string) *Form {
	return NewForm(api, employeeID, func(ctx context.Context) error {
		return v.Load(ctx)
	})
}

// Render writes the dashboard as text. An unloaded view renders a
// placeholder instead of zeroed counts.
func (v *ManagerView) Render(w io.Writer) {
	if !v.loaded {
		fmt.Fprintln(w, "Cannot display data right now.")
		return
	}

	fmt.Fprintln(w, "Team Dashboard")
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Team members\t%d\n", v.stats.TotalTeamMembers)
	fmt.Fprintf(tw, "Total feedback\t%d\n", v.stats.TotalFeedback)
	fmt.Fprintf(tw, "Recent feedback (30d)\t%d\n", v.stats.RecentFeedback)
	fmt.Fprintf(tw, "Sentiment\t+%d / =%d / -%d\n",
		v.stats.SentimentDist.Positive,
		v.stats.SentimentDist.Neutral,
		v.stats.SentimentDist.Negative,
	)
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Team")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, member := range v.team {
		fmt.Fprintf(tw, "  %s\t%s\n", member.Name, member.Email)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Feedback given")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range v.feedback {
		status := "pending"
		if f.Acknowledged() {
			status = "acknowledged"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.EmployeeName, f.Sentiment, f.CreatedAt, status)
	}
	tw.Flush()
}
