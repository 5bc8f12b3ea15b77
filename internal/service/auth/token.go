// Package auth issues and verifies bearer tokens that identify record owners.
// It is framework-agnostic and shared by the HTTP server and the CLI.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"genai-summarizer/internal/domain/entity"
)

// GuestPrefix starts every guest owner ID.
const GuestPrefix = "guest_"

// ErrEmptySubject is returned when a token is issued for or carries no user.
var ErrEmptySubject = errors.New("token subject is empty")

// TokenService signs HS256 tokens carrying sub, iat and exp.
type TokenService struct {
	Secret []byte
	TTL    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewTokenService returns a TokenService for secret and ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{Secret: []byte(secret), TTL: ttl}
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue returns a signed token for userID.
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", ErrEmptySubject
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns its subject. Every failure is an
// AuthenticationError with the same caller-facing message.
func (s *TokenService) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", invalidCredentials(err)
	}
	if claims.Subject == "" {
		return "", invalidCredentials(ErrEmptySubject)
	}
	return claims.Subject, nil
}

// IssueGuest creates a fresh guest ID and a token for it.
func (s *TokenService) IssueGuest() (token, guestID string, err error) {
	guestID, err = NewGuestID()
	if err != nil {
		return "", "", err
	}
	token, err = s.Issue(guestID)
	if err != nil {
		return "", "", err
	}
	return token, guestID, nil
}

// NewGuestID returns "guest_" followed by 8 random hex characters.
func NewGuestID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate guest id: %w", err)
	}
	return GuestPrefix + hex.EncodeToString(b), nil
}

func invalidCredentials(cause error) error {
	return entity.AuthenticationError("Invalid authentication credentials", cause)
}
