package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/storage"
)

func newTestAuthService(users storage.UserStore) *AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   5,
			PasswordResetTTLMinutes: 5,
			BcryptCost:              bcrypt.MinCost,
		},
	}
	return NewAuthService(cfg, users, nil)
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, token, exp, err := svc.Register(ctx, RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "senha-forte",
		TeamID:   ptr(int64(3)),
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, exp.IsZero())
	assert.NotEqual(t, "senha-forte", user.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	require.NotNil(t, claims.TeamID)
	assert.Equal(t, int64(3), *claims.TeamID)

	logged, _, _, err := svc.Login(ctx, "ana@example.com", "senha-forte")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "x"})
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, RegisterInput{Name: "Outra", Email: "ana@example.com", Password: "y"})
	require.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestLoginHidesFailureReason(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "senha"})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "ninguem@example.com", "senha")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(ctx, "ana@example.com", "errada")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "antiga"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "errada", "nova")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "antiga", "nova"))

	_, _, _, err = svc.Login(ctx, "ana@example.com", "nova")
	require.NoError(t, err)
	_, _, _, err = svc.Login(ctx, "ana@example.com", "antiga")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
