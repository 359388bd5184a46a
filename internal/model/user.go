// Package model defines the domain model.
package model

import "time"

// Role classifies a user as a manager or an employee.
// The set is closed; values outside it are a data-integrity error.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole validates a raw role string against the closed enum.
// Unknown values are rejected rather than defaulted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleManager:
		return RoleManager, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", NewInvalidRoleError(s)
	}
}

// User represents an application user.
// ManagerID is set only for employees and points at their manager.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	ManagerID    *string
	CreatedAt    time.Time
}

// Session represents a login session backing a bearer token.
// Deleting the row revokes the token before its expiry.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
