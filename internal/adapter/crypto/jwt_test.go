package crypto

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

func TestVerifySecret(t *testing.T) {
	svc, err := NewAdminAuthService(&config.AuthConfig{AdminSecret: "s3cret", AdminTokenTTL: time.Hour})
	require.NoError(t, err)
	ctx := context.Background()

	require.True(t, svc.VerifySecret(ctx, "s3cret"))
	require.False(t, svc.VerifySecret(ctx, "wrong"))
	require.False(t, svc.VerifySecret(ctx, ""))
}

func TestVerifySecretWithPrecomputedHash(t *testing.T) {
	hash, err := EncryptPassword("from-hash")
	require.NoError(t, err)
	svc, err := NewAdminAuthService(&config.AuthConfig{AdminSecretHash: string(hash), AdminTokenTTL: time.Hour})
	require.NoError(t, err)

	require.True(t, svc.VerifySecret(context.Background(), "from-hash"))
}

func TestNewAdminAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAdminAuthService(&config.AuthConfig{})
	require.ErrorIs(t, err, errs.ErrSecretRequired)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewAdminAuthService(&config.AuthConfig{AdminSecret: "x", JwtSecret: "key", AdminTokenTTL: time.Hour})
	require.NoError(t, err)
	ctx := context.Background()

	tok, err := svc.GenerateToken(ctx)
	require.NoError(t, err)
	claims, err := svc.VerifyToken(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)

	_, err = svc.VerifyToken(ctx, tok+"x")
	require.ErrorIs(t, err, errs.ErrTokenInvalid)

	other, err := NewAdminAuthService(&config.AuthConfig{AdminSecret: "x", JwtSecret: "other", AdminTokenTTL: time.Hour})
	require.NoError(t, err)
	_, err = other.VerifyToken(ctx, tok)
	require.ErrorIs(t, err, errs.ErrTokenInvalid)
}

func TestExpiredToken(t *testing.T) {
	svc, err := NewAdminAuthService(&config.AuthConfig{AdminSecret: "x", JwtSecret: "key", AdminTokenTTL: time.Minute})
	require.NoError(t, err)
	ctx := context.Background()

	tok, err := svc.GenerateToken(ctx)
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = svc.VerifyToken(ctx, tok)
	require.ErrorIs(t, err, errs.ErrTokenInvalid)
}

func TestRejectsNonAdminRole(t *testing.T) {
	svc, err := NewAdminAuthService(&config.AuthConfig{AdminSecret: "x", JwtSecret: "key", AdminTokenTTL: time.Hour})
	require.NoError(t, err)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Role:             "candidate",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("key"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), tok)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}
