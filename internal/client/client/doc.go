// Package client contains the CLI's transport to the auth server.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Signup, Login, Refresh, Verify, Logout and Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that keeps the
//     refresh_token cookie in a cookie jar, sends access tokens as
//     "Authorization: Bearer" headers and maps responses to sentinel errors.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrUserExists, ErrUserNotFound,
// ErrInvalidPayload, ErrNoToken, ErrRefreshExpired, ErrInvalidToken, ErrServer.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
