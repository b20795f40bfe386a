// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/expense-insights/backend/internal/domain/error"
)

func newTestTokenService() *tokenService {
	return NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour).(*tokenService)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "maria@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("expected valid access token, got %v", err)
	}
	if claims.UserID != userID || claims.Email != "maria@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}

	claims, err = svc.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("expected valid refresh token, got %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, claims.UserID)
	}
}

func TestTokenTypeMismatch(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.GenerateTokenPair(uuid.New(), "maria@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.ValidateRefreshToken(pair.AccessToken); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected access token rejected as refresh, got %v", err)
	}
	if _, err := svc.ValidateAccessToken(pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected refresh token rejected as access, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, -time.Minute).(*tokenService)

	pair, err := svc.GenerateTokenPair(uuid.New(), "maria@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	if !errors.Is(err, domainerror.ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := newTestTokenService()
	verifier := NewTokenService("other-secret", 15*time.Minute, 7*24*time.Hour)

	pair, err := issuer.GenerateTokenPair(uuid.New(), "maria@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := verifier.ValidateAccessToken(pair.AccessToken); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	svc := newTestTokenService()

	if _, err := svc.ValidateAccessToken("not.a.jwt"); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "correct-horse" {
		t.Error("expected hash to differ from plain text")
	}

	if err := svc.VerifyPassword(hash, "correct-horse"); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong"); err == nil {
		t.Error("expected mismatch to fail")
	}
}
