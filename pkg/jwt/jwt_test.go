package jwt

import (
	"testing"
	"time"

	"dental-clinic-api/config"

	"github.com/google/uuid"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	token, tokenID, err := service.GenerateAccessToken(userID, "admin@clinic.local", "ADMIN")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if tokenID == "" {
		t.Fatal("token ID must not be empty")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user ID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "admin@clinic.local" || claims.Role != "ADMIN" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.TokenType != AccessToken {
		t.Fatalf("token type = %s, want access", claims.TokenType)
	}
	if claims.TokenID != tokenID {
		t.Fatal("token ID in claims must match the returned ID")
	}
}

func TestRefreshTokenCarriesRefreshType(t *testing.T) {
	service := newTestService()

	token, _, err := service.GenerateRefreshToken(uuid.New(), "a@b.c", "RECEPTIONIST")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Fatalf("token type = %s, want refresh", claims.TokenType)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService().GenerateAccessToken(uuid.New(), "a@b.c", "ADMIN")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "different-secret", AccessExpiry: time.Minute})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})

	token, _, err := service.GenerateAccessToken(uuid.New(), "a@b.c", "ADMIN")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := service.ValidateToken(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := newTestService().ValidateToken("not-a-token"); err == nil {
		t.Fatal("malformed token must be rejected")
	}
}
