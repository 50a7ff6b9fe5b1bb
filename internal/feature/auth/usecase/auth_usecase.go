package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"chupchup_backend/internal/feature/auth/domain/entity"
	"chupchup_backend/internal/platform/metrics"
)

// Redirect hints returned to the client.
const (
	RedirectHome  = "paginainicial.html"
	RedirectAdmin = "admin.html"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create persists a new user.
	// It returns ErrEmailAlreadyExists when the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// PasswordHasher hashes and verifies secrets.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

// TokenIssuer signs a token carrying the user's role.
// It is only wired when the admin guard is enabled.
type TokenIssuer interface {
	GenerateToken(userID uint, email, role string) (string, error)
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Neighborhood string
	Street       string
	Reference    string
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	User     *entity.User
	Redirect string
	// Token is empty unless a TokenIssuer is configured.
	Token string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// tokens may be nil.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a customer account with role "user".
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return ErrMissingFields
	}

	_, err := u.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return ErrEmailAlreadyExists
	case !errors.Is(err, ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrUserLookup, err)
	}

	digest, err := u.hasher.Hash(in.Password)
	if err != nil {
		return err
	}

	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		Password:     digest,
		Neighborhood: in.Neighborhood,
		Street:       in.Street,
		Reference:    in.Reference,
		Role:         entity.RoleUser,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// concurrent registration of the same email lands here
		if errors.Is(err, ErrEmailAlreadyExists) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUserCreate, err)
	}

	metrics.UsersRegisteredTotal.Inc()
	zerolog.Ctx(ctx).Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	return nil
}

// Login checks the credentials and returns the user with a redirect hint.
// Unknown emails and wrong passwords are reported separately.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return nil, ErrUserNotFound
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrUserLookup, err)
	}

	if !u.hasher.Verify(password, user.Password) {
		metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
		return nil, ErrWrongPassword
	}

	res := &LoginResult{User: user, Redirect: RedirectHome}
	if user.IsAdmin() {
		res.Redirect = RedirectAdmin
	}

	if u.tokens != nil {
		token, err := u.tokens.GenerateToken(user.ID, user.Email, user.Role)
		if err != nil {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		res.Token = token
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return res, nil
}

// EnsureAdmin creates an admin account for email unless one already exists.
// It reports whether a user was created.
func (u *authUsecase) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, ErrMissingFields
	}

	existing, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.IsAdmin() {
			zerolog.Ctx(ctx).Warn().Str("email", email).Msg("seed email belongs to a non-admin user")
		}
		return false, nil
	case !errors.Is(err, ErrUserNotFound):
		return false, fmt.Errorf("%w: %w", ErrUserLookup, err)
	}

	digest, err := u.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	admin := &entity.User{
		Name:     name,
		Email:    email,
		Password: digest,
		Role:     entity.RoleAdmin,
	}
	if err := u.users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("%w: %w", ErrUserCreate, err)
	}
	return true, nil
}
