package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Manager mints and validates tokens with two independent secrets and lifetimes.
// It holds no mutable state and is safe for concurrent use.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewManager validates the secrets and lifetimes and returns a Manager.
func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// WithClock returns a copy of m that reads the current time from now.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	c := *m
	c.now = now
	return &c
}

// AccessTokenTTL returns the access token lifetime.
func (m *Manager) AccessTokenTTL() time.Duration { return m.accessTTL }

// RefreshTokenTTL returns the refresh token lifetime.
func (m *Manager) RefreshTokenTTL() time.Duration { return m.refreshTTL }

// IssueAccessToken signs p with the access secret.
func (m *Manager) IssueAccessToken(p Payload) (string, error) {
	return GenerateToken(p, m.accessSecret, m.now(), m.accessTTL)
}

// IssueRefreshToken signs p with the refresh secret.
func (m *Manager) IssueRefreshToken(p Payload) (string, error) {
	return GenerateToken(p, m.refreshSecret, m.now(), m.refreshTTL)
}

// IssuePair mints both tokens from the same payload.
func (m *Manager) IssuePair(p Payload) (*TokenPair, error) {
	access, err := m.IssueAccessToken(p)
	if err != nil {
		return nil, err
	}
	refresh, err := m.IssueRefreshToken(p)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken validates token against the access secret.
func (m *Manager) VerifyAccessToken(token string) (Payload, error) {
	return Verify(token, m.accessSecret, jwt.WithTimeFunc(m.now))
}

// VerifyRefreshToken validates token against the refresh secret.
func (m *Manager) VerifyRefreshToken(token string) (Payload, error) {
	return Verify(token, m.refreshSecret, jwt.WithTimeFunc(m.now))
}
