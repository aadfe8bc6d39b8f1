package primary

import (
	"context"

	"gitlab.com/examproctor-2025.net/internal/domain"
)

// AdminAuthService checks the shared admin secret and issues short-lived admin tokens
type AdminAuthService interface {
	VerifySecret(ctx context.Context, secret string) bool
	GenerateToken(ctx context.Context) (string, error)
	VerifyToken(ctx context.Context, token string) (*domain.AdminClaims, error)
}
