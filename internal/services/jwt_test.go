package services_test

import (
	"testing"
	"time"

	"dicebank-backend/internal/config"
	"dicebank-backend/internal/services"
)

func TestJWTService(t *testing.T) {
	cfg := config.Defaults()
	jwtService := services.NewJWTService(&cfg)

	token, expiresAt, err := jwtService.GenerateToken("session-1")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("Token should expire in the future")
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("Expected session-1, got %s", claims.SessionID)
	}

	other := config.Defaults()
	other.JWTSecret = "another-secret"
	if _, err := services.NewJWTService(&other).ValidateToken(token); err == nil {
		t.Error("Token signed with a different secret should be rejected")
	}

	if _, err := jwtService.ValidateToken("not-a-token"); err == nil {
		t.Error("Garbage token should be rejected")
	}
}

func TestJWTServiceExpired(t *testing.T) {
	cfg := config.Defaults()
	cfg.TokenTTL = -time.Minute
	jwtService := services.NewJWTService(&cfg)

	token, _, err := jwtService.GenerateToken("session-1")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := jwtService.ValidateToken(token); err == nil {
		t.Error("Expired token should be rejected")
	}
}
