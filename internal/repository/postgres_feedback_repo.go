package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// PostgresFeedbackRepo is the PostgreSQL feedback repository.
type PostgresFeedbackRepo struct {
	db *sql.DB
}

// NewPostgresFeedbackRepo creates a PostgresFeedbackRepo.
func NewPostgresFeedbackRepo(db *sql.DB) *PostgresFeedbackRepo {
	return &PostgresFeedbackRepo{db: db}
}

// Create inserts a feedback record.
func (r *PostgresFeedbackRepo) Create(ctx context.Context, fb *model.Feedback) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback (id, manager_id, employee_id, strengths, areas_to_improve, sentiment, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fb.ID, fb.ManagerID, fb.EmployeeID, fb.Strengths, fb.AreasToImprove, fb.Sentiment, fb.CreatedAt, fb.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// FindByID returns the record with the given ID, or nil if absent.
// The denormalized names are not populated; list queries carry those.
func (r *PostgresFeedbackRepo) FindByID(ctx context.Context, id string) (*model.Feedback, error) {
	fb := &model.Feedback{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, manager_id, employee_id, strengths, areas_to_improve, sentiment,
		        created_at, updated_at, acknowledged_at
		 FROM feedback WHERE id = $1`,
		id,
	).Scan(&fb.ID, &fb.ManagerID, &fb.EmployeeID, &fb.Strengths, &fb.AreasToImprove,
		&fb.Sentiment, &fb.CreatedAt, &fb.UpdatedAt, &fb.AcknowledgedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}

	return fb, nil
}

// listQuery joins user names for display. The WHERE column differs between
// the manager and employee views; everything else is identical.
const listQuery = `
	SELECT f.id, f.manager_id, f.employee_id, f.strengths, f.areas_to_improve,
	       f.sentiment, f.created_at, f.updated_at, f.acknowledged_at,
	       m.name AS manager_name, e.name AS employee_name
	FROM feedback f
	JOIN users m ON f.manager_id = m.id
	JOIN users e ON f.employee_id = e.id
	WHERE %s = $1
	ORDER BY f.created_at DESC`

// ListByManager returns feedback authored by the manager, newest first.
func (r *PostgresFeedbackRepo) ListByManager(ctx context.Context, managerID string) ([]*model.Feedback, error) {
	return r.list(ctx, fmt.Sprintf(listQuery, "f.manager_id"), managerID)
}

// ListByEmployee returns feedback addressed to the employee, newest first.
func (r *PostgresFeedbackRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*model.Feedback, error) {
	return r.list(ctx, fmt.Sprintf(listQuery, "f.employee_id"), employeeID)
}

func (r *PostgresFeedbackRepo) list(ctx context.Context, query, id string) ([]*model.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var list []*model.Feedback
	for rows.Next() {
		fb := &model.Feedback{}
		if err := rows.Scan(&fb.ID, &fb.ManagerID, &fb.EmployeeID, &fb.Strengths, &fb.AreasToImprove,
			&fb.Sentiment, &fb.CreatedAt, &fb.UpdatedAt, &fb.AcknowledgedAt,
			&fb.ManagerName, &fb.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		list = append(list, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}

	return list, nil
}

// Update rewrites the feedback text and sentiment and bumps updated_at.
func (r *PostgresFeedbackRepo) Update(ctx context.Context, fb *model.Feedback) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE feedback
		 SET strengths = $1, areas_to_improve = $2, sentiment = $3, updated_at = $4
		 WHERE id = $5`,
		fb.Strengths, fb.AreasToImprove, fb.Sentiment, fb.UpdatedAt, fb.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}
	return nil
}

// Acknowledge sets acknowledged_at if it is still unset.
// The WHERE clause makes the write one-shot at the database level; a record
// acknowledged earlier matches zero rows and (nil, nil) is returned.
func (r *PostgresFeedbackRepo) Acknowledge(ctx context.Context, id string, at time.Time) (*time.Time, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE feedback
		 SET acknowledged_at = $1
		 WHERE id = $2 AND acknowledged_at IS NULL`,
		at, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge feedback: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}
	return &at, nil
}

// Stats aggregates the manager dashboard counts in a single query.
func (r *PostgresFeedbackRepo) Stats(ctx context.Context, managerID string, recentSince time.Time) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT
		     (SELECT count(*) FROM users WHERE manager_id = $1),
		     count(f.id),
		     count(f.id) FILTER (WHERE f.created_at > $2),
		     count(f.id) FILTER (WHERE f.sentiment = 'positive'),
		     count(f.id) FILTER (WHERE f.sentiment = 'neutral'),
		     count(f.id) FILTER (WHERE f.sentiment = 'negative')
		 FROM feedback f
		 WHERE f.manager_id = $1`,
		managerID, recentSince,
	).Scan(
		&stats.TotalTeamMembers,
		&stats.TotalFeedback,
		&stats.RecentFeedback,
		&stats.SentimentDist.Positive,
		&stats.SentimentDist.Neutral,
		&stats.SentimentDist.Negative,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard stats: %w", err)
	}

	return stats, nil
}

// compile-time interface check
var _ FeedbackRepository = (*PostgresFeedbackRepo)(nil)
