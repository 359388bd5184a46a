package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Divyansh670/FeedbackHub/internal/model"
)

const testSecret = "test-secret"

// --- mocks ---

type mockUserRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepo) ListTeamMembers(ctx context.Context, managerID string) ([]*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) IsDirectReport(ctx context.Context, managerID, employeeID string) (bool, error) {
	return false, nil
}

type mockSessionRepo struct {
	createFn     func(ctx context.Context, session *model.Session) error
	findByIDFn   func(ctx context.Context, id string) (*model.Session, error)
	deleteByIDFn func(ctx context.Context, id string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) { return 0, nil }

// --- helpers ---

func testUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &model.User{
		ID:           "user-1",
		Email:        "manager@company.com",
		PasswordHash: hash,
		Name:         "John Manager",
		Role:         model.RoleManager,
		CreatedAt:    time.Now(),
	}
}

func newTestService(userRepo *mockUserRepo, sessionRepo *mockSessionRepo) *Service {
	return NewService(userRepo, sessionRepo, ServiceConfig{
		JWTSecret:     testSecret,
		SessionMaxAge: 3600,
	})
}

// --- Login ---

func TestService_Login_Success(t *testing.T) {
	user := testUser(t, "password123")
	var savedSession *model.Session

	svc := newTestService(
		&mockUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
				if email != user.Email {
					t.Errorf("email = %q, want %q", email, user.Email)
				}
				return user, nil
			},
		},
		&mockSessionRepo{
			createFn: func(ctx context.Context, session *model.Session) error {
				savedSession = session
				return nil
			},
		},
	)

	token, got, err := svc.Login(context.Background(), user.Email, "password123")
	if err != nil {
		t.Fatalf("Login() returned error: %v", err)
	}
	if token == "" {
		t.Error("Login() returned empty token")
	}
	if got.ID != user.ID {
		t.Errorf("user ID = %q, want %q", got.ID, user.ID)
	}
	if savedSession == nil {
		t.Fatal("no session was persisted")
	}

	// The token must resolve back to the user through the stored session.
	claims, err := verifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token sub = %q, want %q", claims.UserID, user.ID)
	}
	if claims.SessionID != savedSession.ID {
		t.Errorf("token jti = %q, want session ID %q", claims.SessionID, savedSession.ID)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	user := testUser(t, "password123")
	svc := newTestService(
		&mockUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
				return user, nil
			},
		},
		&mockSessionRepo{
			createFn: func(ctx context.Context, session *model.Session) error {
				t.Error("session was created for a failed login")
				return nil
			},
		},
	)

	_, _, err := svc.Login(context.Background(), user.Email, "wrong")
	assertAPIErrorCode(t, err, model.ErrCodeInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	_, _, err := svc.Login(context.Background(), "nobody@company.com", "password123")
	assertAPIErrorCode(t, err, model.ErrCodeInvalidCredentials)
}

func TestService_Login_MissingFields(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	for _, tt := range []struct{ email, password string }{
		{"", "password123"},
		{"manager@company.com", ""},
		{"", ""},
	} {
		_, _, err := svc.Login(context.Background(), tt.email, tt.password)
		assertAPIErrorCode(t, err, model.ErrCodeMissingCredentials)
	}
}

// --- Authenticate ---

func TestService_Authenticate_ValidToken(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	token, err := signToken(testSecret, "user-1", "session-1", expiresAt)
	if err != nil {
		t.Fatalf("signToken failed: %v", err)
	}

	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			if id != "session-1" {
				t.Errorf("session ID = %q, want %q", id, "session-1")
			}
			return &model.Session{ID: id, UserID: "user-1", ExpiresAt: expiresAt}, nil
		},
	})

	userID, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate() returned error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want %q", userID, "user-1")
	}
}

func TestService_Authenticate_RevokedSession(t *testing.T) {
	token, err := signToken(testSecret, "user-1", "session-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("signToken failed: %v", err)
	}

	// Session row is gone: logout already revoked the token.
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	if _, err := svc.Authenticate(context.Background(), token); err == nil {
		t.Error("Authenticate() accepted a revoked token")
	}
}

func TestService_Authenticate_ExpiredToken(t *testing.T) {
	token, err := signToken(testSecret, "user-1", "session-1", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("signToken failed: %v", err)
	}

	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})
	if _, err := svc.Authenticate(context.Background(), token); err == nil {
		t.Error("Authenticate() accepted an expired token")
	}
}

func TestService_Authenticate_WrongSecret(t *testing.T) {
	token, err := signToken("other-secret", "user-1", "session-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("signToken failed: %v", err)
	}

	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})
	if _, err := svc.Authenticate(context.Background(), token); err == nil {
		t.Error("Authenticate() accepted a token signed with a different secret")
	}
}

func TestService_Authenticate_SessionUserMismatch(t *testing.T) {
	token, err := signToken(testSecret, "user-1", "session-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("signToken failed: %v", err)
	}

	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			return &model.Session{ID: id, UserID: "someone-else"}, nil
		},
	})

	if _, err := svc.Authenticate(context.Background(), token); err == nil {
		t.Error("Authenticate() accepted a session owned by a different user")
	}
}

// --- Logout ---

func TestService_Logout_DeletesSession(t *testing.T) {
	token, err := signToken(testSecret, "user-1", "session-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("signToken failed: %v", err)
	}

	deleted := ""
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{
		deleteByIDFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout() returned error: %v", err)
	}
	if deleted != "session-1" {
		t.Errorf("deleted session = %q, want %q", deleted, "session-1")
	}
}

func TestService_Logout_MalformedTokenIsIdempotent(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{
		deleteByIDFn: func(ctx context.Context, id string) error {
			t.Error("delete was called for a malformed token")
			return nil
		},
	})

	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Errorf("Logout() returned error for malformed token: %v", err)
	}
}

// --- GetUser ---

func TestService_GetUser_NotFound(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	_, err := svc.GetUser(context.Background(), "ghost")
	assertAPIErrorCode(t, err, model.ErrCodeUserNotFound)
}

func assertAPIErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *model.APIError (err: %v)", err, err)
	}
	if apiErr.Code != code {
		t.Errorf("error code = %q, want %q", apiErr.Code, code)
	}
}
