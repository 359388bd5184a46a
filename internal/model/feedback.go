package model

import "time"

// Sentiment classifies the overall tone of a feedback record.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment validates a raw sentiment string against the closed enum.
func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(s) {
	case SentimentPositive:
		return SentimentPositive, nil
	case SentimentNeutral:
		return SentimentNeutral, nil
	case SentimentNegative:
		return SentimentNegative, nil
	default:
		return "", NewInvalidSentimentError(s)
	}
}

// Feedback represents one structured feedback record from a manager to an
// employee. AcknowledgedAt is nil until the employee acknowledges it, after
// which it is immutable. ManagerName and EmployeeName are denormalized for
// display and populated by list queries.
type Feedback struct {
	ID             string
	ManagerID      string
	EmployeeID     string
	Strengths      string
	AreasToImprove string
	Sentiment      Sentiment
	CreatedAt      time.Time
	UpdatedAt      time.Time
	AcknowledgedAt *time.Time
	ManagerName    string
	EmployeeName   string
}

// Acknowledged reports whether the employee has acknowledged this record.
func (f *Feedback) Acknowledged() bool {
	return f.AcknowledgedAt != nil
}

// FeedbackSubmission is the transient input for creating a feedback record.
type FeedbackSubmission struct {
	EmployeeID     string    `json:"employee_id"`
	Strengths      string    `json:"strengths"`
	AreasToImprove string    `json:"areas_to_improve"`
	Sentiment      Sentiment `json:"sentiment"`
}

// DashboardStats holds the aggregate counts shown on the manager dashboard.
type DashboardStats struct {
	TotalTeamMembers int                   `json:"total_team_members"`
	TotalFeedback    int                   `json:"total_feedback"`
	RecentFeedback   int                   `json:"recent_feedback"`
	SentimentDist    SentimentDistribution `json:"sentiment_distribution"`
}

// SentimentDistribution counts feedback per sentiment. All three buckets are
// always present, zero-valued when empty.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}
