package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/models"
)

const testSecret = "test-jwt-secret-key-12345678901234567890"

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	token, err := svc.Issue("ada@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), claims.ExpiresAt, 5)
}

func TestVerifyFailures(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	good, err := svc.Issue("ada@example.com")
	require.NoError(t, err)

	expired, err := NewTokenService(testSecret, -time.Minute).Issue("ada@example.com")
	require.NoError(t, err)

	foreign, err := NewTokenService("another-secret", time.Hour).Issue("ada@example.com")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Email: "ada@example.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", apperr.ErrMissingCredential},
		{"blank header", "   ", apperr.ErrMissingCredential},
		{"no token segment", "Bearer", apperr.ErrInvalidCredential},
		{"garbage token", "Bearer abc.def.ghi", apperr.ErrInvalidCredential},
		{"expired", "Bearer " + expired, apperr.ErrInvalidCredential},
		{"wrong secret", "Bearer " + foreign, apperr.ErrInvalidCredential},
		{"none algorithm", "Bearer " + noneAlg, apperr.ErrInvalidCredential},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.header)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("scheme is not inspected", func(t *testing.T) {
		claims, err := svc.Verify("Token " + good)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", claims.Email)
	})
}

type fakeUsers map[string]*models.User

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if email == "broken@example.com" {
		return nil, errors.New("connection refused")
	}
	return f[email], nil
}

func TestAuthorize(t *testing.T) {
	users := fakeUsers{
		"admin@example.com":    {Email: "admin@example.com", Role: models.RoleAdmin},
		"demo@example.com":     {Email: "demo@example.com", Role: models.RoleDemoAdmin},
		"customer@example.com": {Email: "customer@example.com", Role: models.Role("customer")},
		"plain@example.com":    {Email: "plain@example.com"},
	}
	authz := NewAuthorizer(users)
	ctx := context.Background()

	role, err := authz.Authorize(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	role, err = authz.Authorize(ctx, "demo@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDemoAdmin, role)

	for _, email := range []string{"customer@example.com", "plain@example.com", "ghost@example.com"} {
		_, err := authz.Authorize(ctx, email)
		assert.ErrorIs(t, err, apperr.ErrForbidden, email)
	}

	_, err = authz.Authorize(ctx, "broken@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrForbidden)
}

func TestIsAdmin(t *testing.T) {
	authz := NewAuthorizer(fakeUsers{
		"admin@example.com": {Role: models.RoleAdmin},
		"user@example.com":  {},
	})
	ctx := context.Background()

	ok, err := authz.IsAdmin(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = authz.IsAdmin(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = authz.IsAdmin(ctx, "broken@example.com")
	assert.Error(t, err)
}
