package handler

import (
	"time"

	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// UserResponse is the wire form of a user. The password hash never leaves
// the server.
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	ManagerID *string `json:"manager_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// FeedbackResponse is the wire form of a feedback record.
type FeedbackResponse struct {
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

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token and the logged-in user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AcknowledgeResponse carries the timestamp set by an acknowledgment.
type AcknowledgeResponse struct {
	AcknowledgedAt string `json:"acknowledged_at"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toUserResponses(users []*model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toFeedbackResponse(f *model.Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:             f.ID,
		ManagerID:      f.ManagerID,
		EmployeeID:     f.EmployeeID,
		Strengths:      f.Strengths,
		AreasToImprove: f.AreasToImprove,
		Sentiment:      string(f.Sentiment),
		CreatedAt:      f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      f.UpdatedAt.Format(time.RFC3339),
		ManagerName:    f.ManagerName,
		EmployeeName:   f.EmployeeName,
	}
	if f.AcknowledgedAt != nil {
		at := f.AcknowledgedAt.Format(time.RFC3339)
		resp.AcknowledgedAt = &at
	}
	return resp
}

func toFeedbackResponses(records []*model.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(records))
	for _, f := range records {
		out = append(out, toFeedbackResponse(f))
	}
	return out
}
