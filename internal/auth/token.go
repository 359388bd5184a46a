package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenClaims is the decoded content of a bearer token.
type tokenClaims struct {
	UserID    string // sub
	SessionID string // jti
}

// signToken issues an HS256 JWT for the user. The jti carries the session ID
// so the token can be revoked by deleting the session row.
func signToken(secret, userID, sessionID string, expiresAt time.Time) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	return token.SignedString([]byte(secret))
}

// verifyToken checks the signature and expiry and extracts the claims.
// Only HS256 is accepted.
func verifyToken(secret, tokenString string) (*tokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("token is missing sub or jti claim")
	}

	return &tokenClaims{
		UserID:    claims.Subject,
		SessionID: claims.ID,
	}, nil
}

// HashPassword produces a bcrypt hash for storage. Used by seeding and any
// future registration flow.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
