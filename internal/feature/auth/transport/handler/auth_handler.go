// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chupchup_backend/internal/api"
	"chupchup_backend/internal/feature/auth/transport/http/dto"
	"chupchup_backend/internal/feature/auth/usecase"
)

// Response messages of the auth endpoints.
const (
	msgMissingFields   = "Campos obrigatórios não preenchidos."
	msgAlreadyExists   = "Usuário já cadastrado."
	msgRegisterFailed  = "Erro ao cadastrar usuário."
	msgRegistered      = "Cadastro realizado com sucesso!"
	msgUserNotFound    = "Usuário não encontrado."
	msgWrongPassword   = "Senha incorreta."
	msgLoginSuccessful = "Login realizado com sucesso!"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register creates a customer account.
	Register(ctx context.Context, in usecase.RegisterInput) error
	// Login checks the credentials and returns the user and redirect hint.
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/cadastro.
// - 必須項目の欠落は400
// - メール重複は400
// - ストア障害は500（詳細はログのみ）
// - 成功時は200とリダイレクト先
func (h *AuthHandler) Register(c *gin.Context) {
	log := zerolog.Ctx(c.Request.Context())

	var req dto.SignupReq
	if err := bind(c, &req); err != nil {
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("register bind failed")
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Erro: msgMissingFields})
		return
	}

	err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Neighborhood: req.Neighborhood,
		Street:       req.Street,
		Reference:    req.Reference,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.SignupRes{Mensagem: msgRegistered, Redirect: usecase.RedirectHome})
	case errors.Is(err, usecase.ErrMissingFields):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Erro: msgMissingFields})
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		log.Info().Str("email", req.Email).Msg("register rejected: email already exists")
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Erro: msgAlreadyExists})
	case errors.Is(err, usecase.ErrUserLookup):
		log.Error().Err(err).Str("email", req.Email).Msg("register lookup failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Erro: api.MsgServerError})
	default:
		log.Error().Err(err).Str("email", req.Email).Msg("register failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Erro: msgRegisterFailed})
	}
}

// Login handles POST /api/login.
// - ユーザー未検出とパスワード不一致はどちらも401（メッセージは区別）
// - ストア障害は500
// - 成功時はパスワードハッシュを除いたユーザー情報を返却
func (h *AuthHandler) Login(c *gin.Context) {
	log := zerolog.Ctx(c.Request.Context())

	var req dto.LoginReq
	if err := bind(c, &req); err != nil {
		log.Warn().Err(err).Str("remote_addr", c.ClientIP()).Msg("login bind failed")
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Erro: api.MsgInvalidRequest})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrUserNotFound):
		log.Info().Str("email", req.Email).Str("remote_addr", c.ClientIP()).Msg("login failed: user not found")
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Erro: msgUserNotFound})
		return
	case errors.Is(err, usecase.ErrWrongPassword):
		log.Info().Str("email", req.Email).Str("remote_addr", c.ClientIP()).Msg("login failed: wrong password")
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Erro: msgWrongPassword})
		return
	default:
		log.Error().Err(err).Str("email", req.Email).Msg("login failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Erro: api.MsgServerError})
		return
	}

	u := res.User
	log.Info().Uint("user_id", u.ID).Str("role", u.Role).Msg("user login successful")
	c.JSON(http.StatusOK, dto.LoginRes{
		Mensagem: msgLoginSuccessful,
		Usuario: dto.UserItem{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Neighborhood: u.Neighborhood,
			Street:       u.Street,
			Reference:    u.Reference,
			Role:         u.Role,
		},
		Redirect: res.Redirect,
		Token:    res.Token,
	})
}

// bind decodes JSON or form bodies. An empty body binds to the zero value.
func bind(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
