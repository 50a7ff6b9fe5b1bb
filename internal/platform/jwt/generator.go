// Package jwtmw issues and verifies the HS256 tokens of the admin guard.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names carried by issued tokens.
const (
	ClaimSubject = "sub"
	ClaimEmail   = "email"
	ClaimRole    = "tipo"
)

// Generator signs tokens for logged-in users.
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed JWT token carrying the user's id, email and role.
func (g *Generator) GenerateToken(userID uint, email, role string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		ClaimSubject: userID,
		"exp":        now.Add(g.expiration).Unix(),
		"iat":        now.Unix(),
		ClaimEmail:   email,
		ClaimRole:    role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
