// Package apiclient is the HTTP client for the feedback API.
// All client-side features go through it; nothing else in the client stack
// touches the wire.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnauthorized is returned for any 401 response. The session store uses
// it to tear down a session whose token has expired or been revoked.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a structured error response from the server.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
	Category   string `json:"category"`
	Action     string `json:"action"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// TokenSource supplies the current bearer token. An empty string means no
// session; the request goes out without an Authorization header.
type TokenSource interface {
	Token() string
}

// Client calls the feedback API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a Client. tokens may be nil for login-only use.
func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// User is the wire form of a user.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	ManagerID *string `json:"manager_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// Feedback is the wire form of a feedback record.
type Feedback struct {
	ID             string  `json:"id"`
	ManagerID      string  `json:"manager_id"`
	EmployeeID     string  `json:"employee_id"`
	Strengths      string  `json:"strengths"`
	AreasToImprove string  `json:"areas_to_improve"`
	Sentiment      string  `json:"sentiment"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	AcknowledgedAt *string `json:"acknowledged_at,omitempty"`
	ManagerName    string  `json:"manager_name,omitempty"`
	EmployeeName   string  `json:"employee_name,omitempty"`
}

// Acknowledged reports whether the record has been acknowledged.
func (f *Feedback) Acknowledged() bool {
	return f.AcknowledgedAt != nil
}

// FeedbackSubmission is the input for creating or updating a record.
type FeedbackSubmission struct {
	EmployeeID     string `json:"employee_id,omitempty"`
	Strengths      string `json:"strengths"`
	AreasToImprove string `json:"areas_to_improve"`
	Sentiment      string `json:"sentiment"`
}

// DashboardStats is the wire form of the manager dashboard counts.
type DashboardStats struct {
	TotalTeamMembers int `json:"total_team_members"`
	TotalFeedback    int `json:"total_feedback"`
	RecentFeedback   int `json:"recent_feedback"`
	SentimentDist    struct {
		Positive int `json:"positive"`
		Neutral  int `json:"neutral"`
		Negative int `json:"negative"`
	} `json:"sentiment_distribution"`
}

// LoginResult carries the token and user returned by a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the current session on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me resolves the current token to its user. ErrUnauthorized means the
// token is no longer valid.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetFeedback lists the feedback visible to the current user.
func (c *Client) GetFeedback(ctx context.Context) ([]Feedback, error) {
	var records []Feedback
	if err := c.do(ctx, http.MethodGet, "/api/feedback", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SubmitFeedback creates a feedback record.
func (c *Client) SubmitFeedback(ctx context.Context, sub FeedbackSubmission) (*Feedback, error) {
	var created Feedback
	if err := c.do(ctx, http.MethodPost, "/api/feedback", sub, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFeedback rewrites an existing record's text and sentiment.
func (c *Client) UpdateFeedback(ctx context.Context, feedbackID string, sub FeedbackSubmission) (*Feedback, error) {
	var updated Feedback
	if err := c.do(ctx, http.MethodPut, "/api/feedback/"+feedbackID, sub, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AcknowledgeFeedback marks a record as read by the employee.
func (c *Client) AcknowledgeFeedback(ctx context.Context, feedbackID string) error {
	return c.do(ctx, http.MethodPost, "/api/feedback/"+feedbackID+"/acknowledge", nil, nil)
}

// GetTeamMembers lists the manager's direct reports.
func (c *Client) GetTeamMembers(ctx context.Context) ([]User, error) {
	var members []User
	if err := c.do(ctx, http.MethodGet, "/api/users/team", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetDashboardStats fetches the manager dashboard counts.
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do performs one API request. body is JSON-encoded when non-nil, and the
// response is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeAPIError reads a structured error body. A body that is not in the
// unified format still yields an APIError carrying the status code.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		json.Unmarshal(data, apiErr)
	}
	if apiErr.Code == "" {
		apiErr.Code = "HTTP_ERROR"
		apiErr.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		apiErr.Category = "system"
	}
	return apiErr
}
