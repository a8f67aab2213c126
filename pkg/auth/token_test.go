package auth

import (
	"testing"
	"time"

	"github.com/eletrodesk/eletrodesk-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "eletrodesk"}
	token := signToken(t, "secret", jwt.MapClaims{
		"sub":   "user-1",
		"email": "dist@example.com",
		"iss":   "eletrodesk",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected user id %q", claims.UserID)
	}
	if claims.Email != "dist@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestParseAccessTokenRejectsBadSignature(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret"}
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret"}
	token := signToken(t, "secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseAccessTokenRequiresSubject(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret"}
	token := signToken(t, "secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected missing subject error")
	}
}
