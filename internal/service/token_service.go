package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/config"
)

// Token errors.
var (
	ErrTokenInvalid = errors.New("invalid attempt token")
	ErrTokenExpired = errors.New("attempt token expired")
)

// AttemptClaims bind a signed token to one attempt of one test. There is no
// user identity in them: the token is a capability for the attempt it names,
// not an authentication credential.
type AttemptClaims struct {
	jwt.RegisteredClaims
	AttemptID string `json:"attempt_id"`
	TestID    string `json:"test_id"`
}

// TokenService issues and validates per-attempt access tokens.
type TokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

// GenerateAttemptToken signs a token for an attempt. The token outlives the
// exam deadline by the configured grace so a client can still submit and read
// state right at expiry.
func (s *TokenService) GenerateAttemptToken(attemptID, testID uuid.UUID, deadline time.Time) (string, error) {
	now := time.Now()

	claims := AttemptClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   attemptID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(deadline.Add(s.cfg.AttemptTokenGrace)),
		},
		AttemptID: attemptID.String(),
		TestID:    testID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.AttemptTokenSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateAttemptToken parses and validates a token, returning its claims.
func (s *TokenService) ValidateAttemptToken(tokenStr string) (*AttemptClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AttemptClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.AttemptTokenSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*AttemptClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
