package crypto

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/domain"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

var _ primary.AdminAuthService = (*AdminAuthImpl)(nil)

const adminSubject = "exam-admin"

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuthImpl checks the shared admin secret against a bcrypt hash and issues HS256 tokens
type AdminAuthImpl struct {
	secretHash    []byte
	HMACSecretKey []byte
	ttl           time.Duration
	now           func() time.Time
}

// NewAdminAuthService hashes ADMIN_SECRET when no precomputed hash is configured.
// Without JWT_SECRET a random key is used, so tokens do not survive a restart.
func NewAdminAuthService(cfg *config.AuthConfig) (*AdminAuthImpl, error) {
	hash := []byte(cfg.AdminSecretHash)
	if len(hash) == 0 {
		if cfg.AdminSecret == "" {
			return nil, errs.ErrSecretRequired
		}
		var err error
		hash, err = EncryptPassword(cfg.AdminSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin secret: %w", err)
		}
	}

	key := []byte(cfg.JwtSecret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate token key: %w", err)
		}
	}

	return &AdminAuthImpl{
		secretHash:    hash,
		HMACSecretKey: key,
		ttl:           cfg.AdminTokenTTL,
		now:           time.Now,
	}, nil
}

func (a *AdminAuthImpl) VerifySecret(_ context.Context, secret string) bool {
	if secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.secretHash, []byte(secret)) == nil
}

func (a *AdminAuthImpl) GenerateToken(_ context.Context) (string, error) {
	now := a.now()
	claims := adminClaims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.HMACSecretKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.GeneratingToken, err)
	}
	return tok, nil
}

func (a *AdminAuthImpl) VerifyToken(_ context.Context, token string) (*domain.AdminClaims, error) {
	var claims adminClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.HMACSecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", errs.ErrTokenInvalid, err)
	}
	if claims.Role != domain.RoleAdmin {
		return nil, errs.ErrUnauthorized
	}
	return &domain.AdminClaims{Subject: claims.Subject, Role: claims.Role}, nil
}

// EncryptPassword returns the bcrypt hash to put in ADMIN_SECRET_HASH
func EncryptPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
