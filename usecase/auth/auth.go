package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmaster/backend/domain"
	"github.com/taskmaster/backend/repository"
	"github.com/taskmaster/backend/usecase"
)

// TokenConfig controls how access tokens are minted.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type Credentials struct {
	Username string
	Password string
}

// Token is the response payload for both register and login.
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UseCase struct {
	users    repository.UserRepository
	notifier usecase.Notifier
	cfg      TokenConfig
	logger   *zap.Logger
}

func New(users repository.UserRepository, notifier usecase.Notifier, cfg TokenConfig, logger *zap.Logger) *UseCase {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates a user account and returns a signed access token. The
// welcome notification is handed off to the notifier and never awaited; its
// failure cannot fail registration.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*Token, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		if err := uc.notifier.WelcomeUser(ctx, user); err != nil {
			uc.logger.Warn("welcome notification not enqueued",
				zap.String("username", user.Username), zap.Error(err))
		}
	}

	return uc.mintToken(user)
}

// Login verifies credentials and returns a signed access token. A missing
// user and a wrong password produce the same error.
func (uc *UseCase) Login(ctx context.Context, creds Credentials) (*Token, error) {
	user, err := uc.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return uc.mintToken(user)
}

func (uc *UseCase) mintToken(user *domain.User) (*Token, error) {
	now := time.Now()
	expiresAt := now.Add(uc.cfg.TTL)

	claims := jwt.MapClaims{
		"username": user.Username,
		"user_id":  user.ID,
		"role":     user.Role,
		"iss":      uc.cfg.Issuer,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.cfg.Secret))
	if err != nil {
		return nil, err
	}

	return &Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}
