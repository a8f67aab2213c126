// Package auth validates bearer tokens minted by the hosted auth service.
package auth

import (
	"fmt"

	"github.com/eletrodesk/eletrodesk-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the subset of token claims the API relies on.
type Claims struct {
	UserID string
	Email  string
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ParseAccessToken verifies the HS256 signature and standard claims, returning
// the authenticated subject.
func ParseAccessToken(cfg config.JWTConfig, token string) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret not configured")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	if parsed.Subject == "" {
		return nil, fmt.Errorf("token missing subject")
	}

	return &Claims{UserID: parsed.Subject, Email: parsed.Email}, nil
}
