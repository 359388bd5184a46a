// Package model defines the domain model.
package model

import "fmt"

// APIError is the unified error format. It carries the failure category
// shown to the UI and a suggested remedy.
type APIError struct {
	Code     string // machine-readable error code
	Message  string // human-readable message
	Category string // category: auth, validation, feedback, system
	Action   string // suggested remedy for the user
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Defined error codes.
const (
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeMissingCredentials  = "MISSING_CREDENTIALS"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeAccessDenied        = "ACCESS_DENIED"
	ErrCodeInvalidRole         = "INVALID_ROLE"
	ErrCodeInvalidSentiment    = "INVALID_SENTIMENT"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeEmployeeNotManaged  = "EMPLOYEE_NOT_MANAGED"
	ErrCodeFeedbackNotFound    = "FEEDBACK_NOT_FOUND"
	ErrCodeAlreadyAcknowledged = "ALREADY_ACKNOWLEDGED"
)

// NewInvalidCredentialsError reports a failed login attempt.
// The message deliberately does not reveal whether the email exists.
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Invalid email or password.",
		Category: "auth",
		Action:   "Check your credentials and try again.",
	}
}

// NewMissingCredentialsError reports a login request without email or password.
func NewMissingCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingCredentials,
		Message:  "Email and password are required.",
		Category: "validation",
		Action:   "Provide both email and password.",
	}
}

// NewUserNotFoundError reports a session whose user no longer exists.
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User not found.",
		Category: "auth",
		Action:   "Log in again.",
	}
}

// NewAccessDeniedError reports a role-restricted operation attempted by the
// wrong role.
func NewAccessDeniedError() *APIError {
	return &APIError{
		Code:     ErrCodeAccessDenied,
		Message:  "You do not have permission to perform this action.",
		Category: "auth",
		Action:   "Log in with an account that has the required role.",
	}
}

// NewInvalidRoleError reports a role value outside the closed enum.
func NewInvalidRoleError(role string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRole,
		Message:  fmt.Sprintf("Unknown role: %q.", role),
		Category: "validation",
		Action:   "Role must be either manager or employee.",
	}
}

// NewInvalidSentimentError reports a sentiment value outside the closed enum.
func NewInvalidSentimentError(sentiment string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSentiment,
		Message:  fmt.Sprintf("Unknown sentiment: %q.", sentiment),
		Category: "validation",
		Action:   "Sentiment must be positive, neutral or negative.",
	}
}

// NewMissingFieldError reports a required field left empty.
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("Required field is empty: %s.", field),
		Category: "validation",
		Action:   fmt.Sprintf("Fill in the %s field before submitting.", field),
	}
}

// NewEmployeeNotManagedError reports a submission targeting an employee who
// is not a direct report of the submitting manager.
func NewEmployeeNotManagedError(employeeID string) *APIError {
	return &APIError{
		Code:     ErrCodeEmployeeNotManaged,
		Message:  fmt.Sprintf("Employee not found or not under your management: %s.", employeeID),
		Category: "feedback",
		Action:   "Pick an employee from your team list.",
	}
}

// NewFeedbackNotFoundError reports a feedback record that does not exist or
// is not visible to the caller. The two cases are deliberately not
// distinguished to avoid leaking other teams' record IDs.
func NewFeedbackNotFoundError(feedbackID string) *APIError {
	return &APIError{
		Code:     ErrCodeFeedbackNotFound,
		Message:  fmt.Sprintf("Feedback not found: %s.", feedbackID),
		Category: "feedback",
		Action:   "Refresh the list and try again.",
	}
}

// NewAlreadyAcknowledgedError reports a second acknowledge attempt.
// Acknowledgment is one-shot; the timestamp never changes once set.
func NewAlreadyAcknowledgedError(feedbackID string) *APIError {
	return &APIError{
		Code:     ErrCodeAlreadyAcknowledged,
		Message:  fmt.Sprintf("Feedback has already been acknowledged: %s.", feedbackID),
		Category: "feedback",
		Action:   "No further action is needed.",
	}
}
