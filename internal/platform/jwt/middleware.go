package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"chupchup_backend/internal/api"
)

// Context keys set by RoleRequired.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// RoleRequired returns a Gin middleware that accepts only bearer tokens signed
// with secret whose tipo claim equals role.
// Missing or invalid tokens are rejected with 401, other roles with 403.
func RoleRequired(secret, role string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		log := zerolog.Ctx(c.Request.Context())

		// 1. Authorizationヘッダーを取得
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Erro: api.MsgInvalidToken})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. 署名と有効期限を検証
		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			log.Info().Err(err).Str("remote_addr", c.ClientIP()).Msg("rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Erro: api.MsgInvalidToken})
			return
		}

		// 3. ロールを確認
		got, _ := claims[ClaimRole].(string)
		if got != role {
			log.Info().Str("role", got).Str("path", c.FullPath()).Msg("role not allowed")
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Erro: api.MsgForbidden})
			return
		}

		if sub, ok := claims[ClaimSubject].(float64); ok { // JWT numbers are decoded as float64
			c.Set(ContextUserID, uint(sub))
		}
		c.Set(ContextRole, got)
		c.Next()
	}
}
