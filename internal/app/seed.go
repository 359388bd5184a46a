package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Divyansh670/FeedbackHub/internal/auth"
	"github.com/Divyansh670/FeedbackHub/internal/config"
	"github.com/Divyansh670/FeedbackHub/internal/database"
	"github.com/Divyansh670/FeedbackHub/internal/model"
	"github.com/Divyansh670/FeedbackHub/internal/repository"
)

// seedUser describes one demo account.
type seedUser struct {
	email    string
	name     string
	role     model.Role
	password string
	managed  bool // reports to the demo manager
}

var seedUsers = []seedUser{
	{email: "manager@company.com", name: "John Manager", role: model.RoleManager, password: "password123"},
	{email: "employee@company.com", name: "Jane Employee", role: model.RoleEmployee, password: "password123", managed: true},
	{email: "employee2@company.com", name: "Bob Employee", role: model.RoleEmployee, password: "password123", managed: true},
}

// runSeed loads the demo users and a couple of feedback records.
// Idempotent: accounts that already exist are left alone, and demo feedback
// is only written on the first run.
func runSeed(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := repository.NewPostgresUserRepo(db)
	feedbackRepo := repository.NewPostgresFeedbackRepo(db)

	var managerID string
	created := 0

	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.email)
		if err != nil {
			return fmt.Errorf("failed to look up %s: %w", su.email, err)
		}
		if existing != nil {
			if existing.Role == model.RoleManager {
				managerID = existing.ID
			}
			continue
		}

		hash, err := auth.HashPassword(su.password)
		if err != nil {
			return err
		}

		u := &model.User{
			ID:           uuid.New().String(),
			Email:        su.email,
			PasswordHash: hash,
			Name:         su.name,
			Role:         su.role,
			CreatedAt:    time.Now(),
		}
		if su.managed {
			if managerID == "" {
				return fmt.Errorf("seed order broken: employee %s before any manager", su.email)
			}
			u.ManagerID = &managerID
		}

		if err := userRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to create %s: %w", su.email, err)
		}
		if u.Role == model.RoleManager {
			managerID = u.ID
		}
		created++
		slog.Info("seeded user", slog.String("email", u.Email), slog.String("role", string(u.Role)))
	}

	if created > 0 {
		if err := seedFeedback(ctx, userRepo, feedbackRepo, managerID); err != nil {
			return err
		}
	}

	slog.Info("seeding complete", slog.Int("users_created", created))
	return nil
}

// seedFeedback writes one demo record per seeded employee.
func seedFeedback(ctx context.Context, userRepo repository.UserRepository, feedbackRepo repository.FeedbackRepository, managerID string) error {
	team, err := userRepo.ListTeamMembers(ctx, managerID)
	if err != nil {
		return fmt.Errorf("failed to list team: %w", err)
	}

	samples := []struct {
		strengths string
		areas     string
		sentiment model.Sentiment
	}{
		{"Great work on the recent project. Strong problem-solving skills.", "Could improve time estimation for tasks.", model.SentimentPositive},
		{"Reliable and consistent in delivery.", "Should speak up more in planning meetings.", model.SentimentNeutral},
	}

	now := time.Now()
	for i, member := range team {
		sample := samples[i%len(samples)]
		fb := &model.Feedback{
			ID:             uuid.New().String(),
			ManagerID:      managerID,
			EmployeeID:     member.ID,
			Strengths:      sample.strengths,
			AreasToImprove: sample.areas,
			Sentiment:      sample.sentiment,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := feedbackRepo.Create(ctx, fb); err != nil {
			return fmt.Errorf("failed to seed feedback for %s: %w", member.Email, err)
		}
	}

	return nil
}
