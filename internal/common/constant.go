package common

const (
	// RefreshTokenCookieName is the cookie carrying the refresh token.
	RefreshTokenCookieName = "refresh_token"

	// AuthorizationHeaderName carries the access token as "Bearer <token>".
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix is the literal prefix expected in AuthorizationHeaderName.
	BearerPrefix = "Bearer "
)
