package client

import "errors"

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUserExists     = errors.New("user already exists")
	ErrUserNotFound   = errors.New("no user found")
	ErrInvalidPayload = errors.New("invalid encrypted password")
	ErrNoToken        = errors.New("no token found")
	ErrRefreshExpired = errors.New("refresh token expired, please log in again")
	ErrInvalidToken   = errors.New("invalid refresh token")
	ErrServer         = errors.New("server error")
)
