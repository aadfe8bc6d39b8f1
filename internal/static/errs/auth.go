package errs

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTokenInvalid   = errors.New("invalid token")
	GeneratingToken   = errors.New("error generating token")
	ErrSecretRequired = errors.New("admin secret is not configured")
)
