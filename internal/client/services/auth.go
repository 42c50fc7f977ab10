// Package services contains application services for the auth CLI.
// This file defines the authentication service: signup, login, token refresh,
// verification, logout and a liveness probe.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/yeabtsegataye/equb-system/internal/client/client"
	"github.com/yeabtsegataye/equb-system/internal/cryptox"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: encrypt the password with the shared key, call the
//     server and keep the returned access token in memory.
//   - Refresh: replace the access token using the refresh cookie.
//   - Verify: ask the server whether the current access token is valid.
//   - Logout: clear the refresh cookie server-side and forget the access token.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Refresh(ctx context.Context) error
	Verify(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	IsLoggedIn() bool
}

// authService is the concrete AuthService backed by a remote Client.
type authService struct {
	client    client.Client
	cipherKey string

	mu          sync.RWMutex
	accessToken string
}

// NewAuthService constructs an AuthService bound to the given API client and
// the cipher key shared with the server.
func NewAuthService(c client.Client, cipherKey string) AuthService {
	return &authService{client: c, cipherKey: cipherKey}
}

// Register creates a new account on the server and keeps the session.
func (a *authService) Register(ctx context.Context, email string, password []byte) error {
	payload, err := cryptox.Encrypt(string(password), a.cipherKey)
	if err != nil {
		return fmt.Errorf("encrypt error: %w", err)
	}

	token, err := a.client.Signup(ctx, email, payload)
	if err != nil {
		return err
	}
	a.setAccessToken(token)
	return nil
}

// Login authenticates against the server and keeps the session.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	payload, err := cryptox.Encrypt(string(password), a.cipherKey)
	if err != nil {
		return fmt.Errorf("encrypt error: %w", err)
	}

	token, err := a.client.Login(ctx, email, payload)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	a.setAccessToken(token)
	return nil
}

// Refresh replaces the access token. If the refresh token has expired the
// session is dropped and client.ErrRefreshExpired is returned.
func (a *authService) Refresh(ctx context.Context) error {
	token, err := a.client.Refresh(ctx)
	if err != nil {
		a.setAccessToken("")
		return err
	}
	a.setAccessToken(token)
	return nil
}

func (a *authService) Verify(ctx context.Context) (bool, error) {
	a.mu.RLock()
	token := a.accessToken
	a.mu.RUnlock()

	return a.client.Verify(ctx, token)
}

// Logout forgets the access token even if the server call fails.
func (a *authService) Logout(ctx context.Context) error {
	a.setAccessToken("")
	return a.client.Logout(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func (a *authService) IsLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.accessToken != ""
}

func (a *authService) setAccessToken(token string) {
	a.mu.Lock()
	a.accessToken = token
	a.mu.Unlock()
}
