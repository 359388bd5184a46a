// Package user provides the user domain logic.
package user

import (
	"context"
	"fmt"

	"github.com/Divyansh670/FeedbackHub/internal/model"
	"github.com/Divyansh670/FeedbackHub/internal/repository"
)

// Service implements the user business logic.
type Service struct {
	userRepo repository.UserRepository
}

// NewService creates a Service.
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// TeamMembers returns the caller's direct reports.
// Only managers have a team; any other role is denied.
func (s *Service) TeamMembers(ctx context.Context, caller *model.User) ([]*model.User, error) {
	if caller.Role != model.RoleManager {
		return nil, model.NewAccessDeniedError()
	}

	members, err := s.userRepo.ListTeamMembers(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	return members, nil
}
