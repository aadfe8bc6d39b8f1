package config

import (
	"os"
	"time"
)

type AuthConfig struct {
	AdminSecret     string
	AdminSecretHash string
	JwtSecret       string
	AdminTokenTTL   time.Duration
}

func NewAuthConfig() *AuthConfig {
	return &AuthConfig{
		AdminSecret:     os.Getenv("ADMIN_SECRET"),
		AdminSecretHash: os.Getenv("ADMIN_SECRET_HASH"),
		JwtSecret:       os.Getenv("JWT_SECRET"),
		AdminTokenTTL:   getDurationEnv("ADMIN_TOKEN_TTL_MIN", time.Minute, 720),
	}
}
