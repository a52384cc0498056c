package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testConfig())
	attemptID, testID := uuid.New(), uuid.New()

	token, err := svc.GenerateAttemptToken(attemptID, testID, time.Now().Add(3*time.Hour))
	if err != nil {
		t.Fatalf("GenerateAttemptToken: %v", err)
	}

	claims, err := svc.ValidateAttemptToken(token)
	if err != nil {
		t.Fatalf("ValidateAttemptToken: %v", err)
	}
	if claims.AttemptID != attemptID.String() {
		t.Errorf("attempt_id = %q, want %q", claims.AttemptID, attemptID)
	}
	if claims.TestID != testID.String() {
		t.Errorf("test_id = %q, want %q", claims.TestID, testID)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService(testConfig())
	token, err := issuer.GenerateAttemptToken(uuid.New(), uuid.New(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateAttemptToken: %v", err)
	}

	other := NewTokenService(&config.Config{AttemptTokenSecret: "different-secret"})
	if _, err := other.ValidateAttemptToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenExpiresAfterGrace(t *testing.T) {
	cfg := testConfig()
	cfg.AttemptTokenGrace = 0
	svc := NewTokenService(cfg)

	token, err := svc.GenerateAttemptToken(uuid.New(), uuid.New(), time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("GenerateAttemptToken: %v", err)
	}
	if _, err := svc.ValidateAttemptToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestTokenValidDuringGrace(t *testing.T) {
	svc := NewTokenService(testConfig())

	// Deadline already passed, but the 30 minute grace keeps the token alive
	// so the client can still reach submit.
	token, err := svc.GenerateAttemptToken(uuid.New(), uuid.New(), time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("GenerateAttemptToken: %v", err)
	}
	if _, err := svc.ValidateAttemptToken(token); err != nil {
		t.Errorf("token inside grace window rejected: %v", err)
	}
}
