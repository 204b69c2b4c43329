package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmaster/backend/domain"
	authUC "github.com/taskmaster/backend/usecase/auth"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) WelcomeUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var tokenCfg = authUC.TokenConfig{Secret: "test-secret", Issuer: "taskmaster", TTL: time.Hour}

func TestRegisterHashesPasswordAndMintsToken(t *testing.T) {
	users := new(mockUserRepo)
	notifier := new(mockNotifier)
	uc := authUC.New(users, notifier, tokenCfg, nil)

	var created *domain.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
			created.ID = "user-1"
		}).
		Return(&domain.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser}, nil)
	notifier.On("WelcomeUser", mock.Anything, mock.Anything).Return(nil)

	token, err := uc.Register(context.Background(), authUC.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)

	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "s3cret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")))

	parsed, err := jwt.Parse(token.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte(tokenCfg.Secret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "taskmaster", claims["iss"])

	notifier.AssertCalled(t, "WelcomeUser", mock.Anything, mock.Anything)
}

func TestRegisterNotifierFailureIsSwallowed(t *testing.T) {
	users := new(mockUserRepo)
	notifier := new(mockNotifier)
	uc := authUC.New(users, notifier, tokenCfg, nil)

	users.On("Create", mock.Anything, mock.Anything).
		Return(&domain.User{ID: "user-1", Username: "alice"}, nil)
	notifier.On("WelcomeUser", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	token, err := uc.Register(context.Background(), authUC.RegisterInput{
		Username: "alice",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
}

func TestRegisterRequiresUsernameAndPassword(t *testing.T) {
	uc := authUC.New(new(mockUserRepo), nil, tokenCfg, nil)

	_, err := uc.Register(context.Background(), authUC.RegisterInput{Username: " ", Password: "x"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Register(context.Background(), authUC.RegisterInput{Username: "alice"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	uc := authUC.New(users, nil, tokenCfg, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: "user-1", Username: "alice", PasswordHash: string(hash)}, nil)

	_, err = uc.Login(context.Background(), authUC.Credentials{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginUnknownUserLooksLikeBadPassword(t *testing.T) {
	users := new(mockUserRepo)
	uc := authUC.New(users, nil, tokenCfg, nil)

	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

	_, err := uc.Login(context.Background(), authUC.Credentials{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginSuccess(t *testing.T) {
	users := new(mockUserRepo)
	uc := authUC.New(users, nil, tokenCfg, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: "user-1", Username: "alice", PasswordHash: string(hash)}, nil)

	token, err := uc.Login(context.Background(), authUC.Credentials{Username: "alice", Password: "right"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.True(t, token.ExpiresAt.After(time.Now()))
}
