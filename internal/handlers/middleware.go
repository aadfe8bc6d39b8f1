package handlers

import (
	"net/http"
	"strings"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/handlers/response"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

const (
	AdminSecretHeader = "x-admin-secret"
	AdminSecretQuery  = "secret"
)

type MiddlewareProvider struct {
	auth   primary.AdminAuthService
	logger primary.Logger
}

func New(auth primary.AdminAuthService, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		auth:   auth,
		logger: logger,
	}
}

// AdminMiddleware accepts a bearer admin token, or the shared secret in the
// x-admin-secret header or the secret query parameter
func (m *MiddlewareProvider) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				response.WriteError(w, response.FromError(errs.ErrTokenInvalid))
				return
			}
			if _, err := m.auth.VerifyToken(r.Context(), tokenString); err != nil {
				m.logger.Debug("Rejected admin token", "error", err)
				response.WriteError(w, response.FromError(errs.ErrTokenInvalid))
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		secret := r.Header.Get(AdminSecretHeader)
		if secret == "" {
			secret = r.URL.Query().Get(AdminSecretQuery)
		}
		if secret == "" || !m.auth.VerifySecret(r.Context(), secret) {
			response.WriteError(w, response.FromError(errs.ErrUnauthorized))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware allows the configured origin and answers preflight requests
func CORSMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+AdminSecretHeader)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
