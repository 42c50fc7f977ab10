// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Credential payload errors.
	ErrInvalidCredentialPayload = errors.New("invalid encrypted password")
	ErrUserExists               = errors.New("user already exists")
	ErrUserNotFound             = errors.New("no user found")

	// Auth errors (missing, invalid or malformed token).
	ErrNoToken      = errors.New("no token found")
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
