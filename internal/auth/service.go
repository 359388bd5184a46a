// Package auth provides credential login and bearer token session management.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Divyansh670/FeedbackHub/internal/model"
	"github.com/Divyansh670/FeedbackHub/internal/repository"
)

// ServiceConfig holds the auth service settings.
type ServiceConfig struct {
	JWTSecret     string
	SessionMaxAge int // session lifetime in seconds
}

// Service implements the authentication business logic.
// Tokens are signed JWTs whose jti is a sessions row, so a token is valid
// only while both the signature verifies and the session row exists.
type Service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService creates a Service.
func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, config ServiceConfig) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// Login verifies the credentials and issues a bearer token.
// Unknown email and wrong password produce the same error so the response
// does not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, model.NewMissingCredentialsError()
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		return "", nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, model.NewInvalidCredentialsError()
	}

	session := &model.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := signToken(s.config.JWTSecret, user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return token, user, nil
}

// Logout revokes the session behind the token. Idempotent: an already
// revoked or malformed token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := verifyToken(s.config.JWTSecret, token)
	if err != nil {
		// Nothing to revoke for a token we would reject anyway.
		return nil
	}

	if err := s.sessionRepo.DeleteByID(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user logged out", slog.String("user_id", claims.UserID))
	return nil
}

// Authenticate resolves a bearer token to a user ID.
// The signature, expiry and the session row must all check out.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := verifyToken(s.config.JWTSecret, token)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return "", fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return "", fmt.Errorf("session not found or expired")
	}
	if session.UserID != claims.UserID {
		return "", fmt.Errorf("session does not belong to token subject")
	}

	return session.UserID, nil
}

// GetUser returns the user with the given ID.
func (s *Service) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}
