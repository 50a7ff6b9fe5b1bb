package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"chupchup_backend/internal/feature/auth/domain/entity"
	"chupchup_backend/internal/platform/password"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default: return user not found error
	return nil, ErrUserNotFound
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	GenerateTokenFunc func(userID uint, email, role string) (string, error)
}

// GenerateToken is the mock implementation of the GenerateToken method.
func (m *mockTokenIssuer) GenerateToken(userID uint, email, role string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email, role)
	}
	return "mock-jwt-token", nil
}

func newHasher() *password.BcryptHasher {
	return password.NewBcryptHasher(bcrypt.MinCost)
}

func TestAuthUsecase_Register(t *testing.T) {
	validInput := RegisterInput{
		Name:         "Ana",
		Email:        "ana@x.com",
		Password:     "secret",
		Neighborhood: "Centro",
		Street:       "Rua A",
		Reference:    "casa azul",
	}

	t.Run("successful registration", func(t *testing.T) {
		var created *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, newHasher(), nil)
		err := uc.Register(context.Background(), validInput)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Ana", created.Name)
		assert.Equal(t, "ana@x.com", created.Email)
		assert.Equal(t, "Centro", created.Neighborhood)
		assert.Equal(t, "Rua A", created.Street)
		assert.Equal(t, "casa azul", created.Reference)
		assert.Equal(t, entity.RoleUser, created.Role, "registration always creates plain users")

		// Verify that the password is hashed
		assert.NotEqual(t, "secret", created.Password, "password is not hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret")), "invalid bcrypt hash")
	})

	t.Run("password longer than 72 bytes", func(t *testing.T) {
		long := strings.Repeat("s", 80)
		var created *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				return nil
			},
		}

		hasher := newHasher()
		uc := NewAuthUsecase(mockRepo, hasher, nil)
		in := validInput
		in.Password = long

		require.NoError(t, uc.Register(context.Background(), in))
		require.NotNil(t, created)
		assert.True(t, hasher.Verify(long, created.Password))
	})

	t.Run("missing required fields", func(t *testing.T) {
		tests := []struct {
			name  string
			input RegisterInput
		}{
			{"no name", RegisterInput{Email: "a@x.com", Password: "p"}},
			{"no email", RegisterInput{Name: "A", Password: "p"}},
			{"no password", RegisterInput{Name: "A", Email: "a@x.com"}},
			{"empty", RegisterInput{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockRepo := &mockUserRepository{
					FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
						t.Error("store must not be queried")
						return nil, ErrUserNotFound
					},
					CreateFunc: func(ctx context.Context, user *entity.User) error {
						t.Error("store must not be written")
						return nil
					},
				}

				uc := NewAuthUsecase(mockRepo, newHasher(), nil)
				err := uc.Register(context.Background(), tt.input)

				assert.ErrorIs(t, err, ErrMissingFields)
			})
		}
	})

	t.Run("email already registered", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("duplicate must not be inserted")
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, newHasher(), nil)
		err := uc.Register(context.Background(), validInput)

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("unique violation on insert is a conflict", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := NewAuthUsecase(mockRepo, newHasher(), nil)
		err := uc.Register(context.Background(), validInput)

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		assert.NotErrorIs(t, err, ErrUserCreate)
	})

	t.Run("lookup failure", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, dbErr
			},
		}

		uc := NewAuthUsecase(mockRepo, newHasher(), nil)
		err := uc.Register(context.Background(), validInput)

		assert.ErrorIs(t, err, ErrUserLookup)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := NewAuthUsecase(mockRepo, newHasher(), nil)
		err := uc.Register(context.Background(), validInput)

		assert.ErrorIs(t, err, ErrUserCreate)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	hasher := newHasher()
	digest, err := hasher.Hash("secret")
	require.NoError(t, err)

	customer := &entity.User{ID: 1, Name: "Ana", Email: "ana@x.com", Password: digest, Role: entity.RoleUser}
	admin := &entity.User{ID: 2, Name: "Root", Email: "admin@x.com", Password: digest, Role: entity.RoleAdmin}

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			switch email {
			case customer.Email:
				return customer, nil
			case admin.Email:
				return admin, nil
			}
			return nil, ErrUserNotFound
		},
	}

	t.Run("customer login redirects to landing page", func(t *testing.T) {
		uc := NewAuthUsecase(repo, hasher, nil)

		res, err := uc.Login(context.Background(), "ana@x.com", "secret")

		require.NoError(t, err)
		assert.Same(t, customer, res.User)
		assert.Equal(t, RedirectHome, res.Redirect)
		assert.Empty(t, res.Token, "no token without issuer")
	})

	t.Run("admin login redirects to admin page", func(t *testing.T) {
		uc := NewAuthUsecase(repo, hasher, nil)

		res, err := uc.Login(context.Background(), "admin@x.com", "secret")

		require.NoError(t, err)
		assert.Equal(t, RedirectAdmin, res.Redirect)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc := NewAuthUsecase(repo, hasher, nil)

		res, err := uc.Login(context.Background(), "ana@x.com", "wrong")

		assert.ErrorIs(t, err, ErrWrongPassword)
		assert.Nil(t, res)
	})

	t.Run("unknown email", func(t *testing.T) {
		uc := NewAuthUsecase(repo, hasher, nil)

		res, err := uc.Login(context.Background(), "nobody@x.com", "secret")

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, res)
	})

	t.Run("empty credentials are not found", func(t *testing.T) {
		uc := NewAuthUsecase(repo, hasher, nil)

		_, err := uc.Login(context.Background(), "", "")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		failing := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, errors.New("connection refused")
			},
		}
		uc := NewAuthUsecase(failing, hasher, nil)

		_, err := uc.Login(context.Background(), "ana@x.com", "secret")

		assert.ErrorIs(t, err, ErrUserLookup)
	})

	t.Run("issues token carrying the role", func(t *testing.T) {
		issuer := &mockTokenIssuer{
			GenerateTokenFunc: func(userID uint, email, role string) (string, error) {
				assert.Equal(t, admin.ID, userID)
				assert.Equal(t, admin.Email, email)
				assert.Equal(t, entity.RoleAdmin, role)
				return "signed", nil
			},
		}
		uc := NewAuthUsecase(repo, hasher, issuer)

		res, err := uc.Login(context.Background(), "admin@x.com", "secret")

		require.NoError(t, err)
		assert.Equal(t, "signed", res.Token)
	})

	t.Run("token failure", func(t *testing.T) {
		issuer := &mockTokenIssuer{
			GenerateTokenFunc: func(userID uint, email, role string) (string, error) {
				return "", errors.New("sign failed")
			},
		}
		uc := NewAuthUsecase(repo, hasher, issuer)

		res, err := uc.Login(context.Background(), "ana@x.com", "secret")

		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestAuthUsecase_EnsureAdmin(t *testing.T) {
	t.Run("creates admin when missing", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				return nil
			},
		}
		uc := NewAuthUsecase(repo, newHasher(), nil)

		ok, err := uc.EnsureAdmin(context.Background(), "Root", "admin@x.com", "admin123")

		require.NoError(t, err)
		assert.True(t, ok)
		require.NotNil(t, created)
		assert.Equal(t, entity.RoleAdmin, created.Role)
		assert.NotEqual(t, "admin123", created.Password)
	})

	t.Run("keeps existing account", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 9, Email: email, Role: entity.RoleAdmin}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("existing admin must not be recreated")
				return nil
			},
		}
		uc := NewAuthUsecase(repo, newHasher(), nil)

		ok, err := uc.EnsureAdmin(context.Background(), "Root", "admin@x.com", "admin123")

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("requires credentials", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, newHasher(), nil)

		_, err := uc.EnsureAdmin(context.Background(), "Root", "", "")

		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, errors.New("timeout")
			},
		}
		uc := NewAuthUsecase(repo, newHasher(), nil)

		_, err := uc.EnsureAdmin(context.Background(), "Root", "admin@x.com", "admin123")

		assert.ErrorIs(t, err, ErrUserLookup)
	})
}
