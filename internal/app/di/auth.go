// Package di wires the optional and environment-dependent components.
package di

import (
	"github.com/gin-gonic/gin"

	"chupchup_backend/internal/feature/auth/domain/entity"
	"chupchup_backend/internal/feature/auth/usecase"
	"chupchup_backend/internal/platform/config"
	jwtmw "chupchup_backend/internal/platform/jwt"
)

// NewTokenIssuer returns a JWT generator when the admin guard is enabled.
// Otherwise it returns nil and login responses carry no token.
func NewTokenIssuer(cfg config.AuthConfig) usecase.TokenIssuer {
	if !cfg.AdminGuard {
		return nil
	}
	return jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
}

// NewAdminGuard returns the middleware protecting product writes, or nil
// when the guard is disabled and the routes stay open.
func NewAdminGuard(cfg config.AuthConfig) gin.HandlerFunc {
	if !cfg.AdminGuard {
		return nil
	}
	return jwtmw.RoleRequired(cfg.JWTSecret, entity.RoleAdmin)
}
