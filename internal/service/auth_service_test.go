package service

import (
	"context"
	"testing"
	"time"

	"tenx-cards-be/internal/dto"
	"tenx-cards-be/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newAuthFixture(store *fakeStore) (IAuthService, *memory.TokenBlacklist) {
	blacklist := memory.NewTokenBlacklist()
	svc := NewAuthService(&fakeUowFactory{store: store}, nil, nil, blacklist, testJWTSecret)
	return svc, blacklist
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc, _ := newAuthFixture(store)

	res, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.Email)

	// The stored hash never equals the plaintext password.
	user := store.users[res.Id]
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, res.Id, login.User.Id)

	token, err := jwt.Parse(login.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, res.Id.String(), claims["user_id"])
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	store := newFakeStore()
	svc, _ := newAuthFixture(store)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newFakeStore()
	svc, _ := newAuthFixture(store)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{name: "wrong password", req: dto.LoginRequest{Email: "ada@example.com", Password: "wrong"}},
		{name: "unknown email", req: dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			require.Error(t, err)
			var svcErr *Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, 401, svcErr.Code)
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	store := newFakeStore()
	svc, blacklist := newAuthFixture(store)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	assert.False(t, blacklist.IsRevoked(login.AccessToken))
	require.NoError(t, svc.Logout(context.Background(), login.AccessToken))
	assert.True(t, blacklist.IsRevoked(login.AccessToken))
}

func TestLogoutWithoutTokenIsBadRequest(t *testing.T) {
	store := newFakeStore()
	svc, _ := newAuthFixture(store)

	err := svc.Logout(context.Background(), "")
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Code)
}

func TestTokenBlacklistTTL(t *testing.T) {
	blacklist := memory.NewTokenBlacklist()
	blacklist.Revoke("short-lived", 10*time.Millisecond)
	assert.True(t, blacklist.IsRevoked("short-lived"))

	time.Sleep(25 * time.Millisecond)
	assert.False(t, blacklist.IsRevoked("short-lived"))
}
