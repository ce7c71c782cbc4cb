package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/storage"
)

const resetKeyPrefix = "pwreset:"

// ErrInvalidCredentials is returned on any login failure; the caller never
// learns whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("credenciais inválidas")

// ErrResetTokenInvalid covers unknown, expired and already-consumed reset
// tokens alike.
var ErrResetTokenInvalid = errors.New("token de redefinição inválido ou expirado")

// AuthService coordinates registration, login and password reset flows.
// Reset tokens live in Redis under a TTL; consuming one deletes it.
type AuthService struct {
	users      storage.UserStore
	redis      redis.Cmdable
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users storage.UserStore, redisClient redis.Cmdable) *AuthService {
	return &AuthService{
		users:      users,
		redis:      redisClient,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterInput describes a new account request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Company  string
	TeamID   *int64
}

// Register creates a new account and returns it with a signed token. A taken
// email surfaces as storage.ErrEmailTaken whether it is caught by the lookup
// here or by the store's uniqueness guarantee underneath.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, storage.ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Company:      input.Company,
		TeamID:       input.TeamID,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.TeamID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.TeamID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// RequestPasswordReset stores a single-use token in Redis for the account's
// email. The token value is returned for delivery by the caller.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	key := resetKeyPrefix + token
	if err := s.redis.Set(ctx, key, user.ID, s.resetTTL).Err(); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// ConfirmPasswordReset consumes a reset token and replaces the account's
// credential hash. GETDEL makes consumption single-use even under concurrent
// confirmation attempts.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	key := resetKeyPrefix + token
	userID, err := s.redis.GetDel(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("load reset token: %w", err)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	_, err = s.users.UpdateUser(ctx, userID, storage.UserChanges{PasswordHash: &hash})
	return err
}

// ChangePassword verifies the current credential before replacing it.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return err
	}
	_, err = s.users.UpdateUser(ctx, userID, storage.UserChanges{PasswordHash: &hash})
	return err
}
