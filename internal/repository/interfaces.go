// Package repository defines the persistence interfaces.
package repository

import (
	"context"
	"time"

	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// UserRepository persists user records.
type UserRepository interface {
	// FindByID returns the user with the given ID, or nil if absent.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns the user with the given email, or nil if absent.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error

	// ListTeamMembers returns the employees whose manager_id equals managerID.
	ListTeamMembers(ctx context.Context, managerID string) ([]*model.User, error)

	// IsDirectReport reports whether employeeID is an employee managed by
	// managerID.
	IsDirectReport(ctx context.Context, managerID, employeeID string) (bool, error)
}

// SessionRepository persists login sessions.
type SessionRepository interface {
	// Create inserts a session.
	Create(ctx context.Context, session *model.Session) error
	// FindByID returns the session with the given ID, or nil if absent or
	// expired.
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID deletes the session with the given ID.
	DeleteByID(ctx context.Context, id string) error
	// DeleteExpired removes sessions past their expiry and returns the count.
	DeleteExpired(ctx context.Context) (int64, error)
}

// FeedbackRepository persists feedback records.
type FeedbackRepository interface {
	// Create inserts a feedback record.
	Create(ctx context.Context, fb *model.Feedback) error

	// FindByID returns the record with the given ID without the denormalized
	// names, or nil if absent.
	FindByID(ctx context.Context, id string) (*model.Feedback, error)

	// ListByManager returns feedback authored by the manager, newest first,
	// with manager and employee names populated.
	ListByManager(ctx context.Context, managerID string) ([]*model.Feedback, error)

	// ListByEmployee returns feedback addressed to the employee, newest
	// first, with manager and employee names populated.
	ListByEmployee(ctx context.Context, employeeID string) ([]*model.Feedback, error)

	// Update rewrites strengths, areas_to_improve and sentiment and bumps
	// updated_at. The acknowledgment timestamp is never touched.
	Update(ctx context.Context, fb *model.Feedback) error

	// Acknowledge sets acknowledged_at if it is still unset and returns the
	// timestamp. A record acknowledged earlier returns (nil, nil) so the
	// caller can distinguish the one-shot violation from a missing record.
	Acknowledge(ctx context.Context, id string, at time.Time) (*time.Time, error)

	// Stats aggregates the dashboard counts for the manager's records.
	Stats(ctx context.Context, managerID string, recentSince time.Time) (*model.DashboardStats, error)
}
