package client

import "context"

// Client is the transport-agnostic contract for the auth API. Implementations
// keep the refresh-token cookie themselves; callers only ever see access tokens.
type Client interface {
	Close() error
	Signup(ctx context.Context, email, encryptedPassword string) (string, error)
	Login(ctx context.Context, email, encryptedPassword string) (string, error)
	Refresh(ctx context.Context) (string, error)
	Verify(ctx context.Context, accessToken string) (bool, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}
