package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeabtsegataye/equb-system/internal/common"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("access-secret", "refresh-secret", 60*time.Minute, 90*24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewManager_Validation(t *testing.T) {
	tests := []struct {
		name          string
		access        string
		refresh       string
		accessTTL     time.Duration
		refreshTTL    time.Duration
		expectFailure bool
	}{
		{"ok", "a", "r", time.Minute, time.Hour, false},
		{"empty access secret", "", "r", time.Minute, time.Hour, true},
		{"empty refresh secret", "a", "", time.Minute, time.Hour, true},
		{"same secrets", "same", "same", time.Minute, time.Hour, true},
		{"zero access ttl", "a", "r", 0, time.Hour, true},
		{"negative refresh ttl", "a", "r", time.Minute, -time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager(tt.access, tt.refresh, tt.accessTTL, tt.refreshTTL)
			if tt.expectFailure {
				assert.Error(t, err)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.accessTTL, m.AccessTokenTTL())
			assert.Equal(t, tt.refreshTTL, m.RefreshTokenTTL())
		})
	}
}

func TestManager_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	for _, p := range []Payload{
		{ID: "1", Email: "a@b.com"},
		{ID: "6f1c1d3e-0000-4000-8000-000000000000", Email: ""},
		{ID: "x", Email: "üñí@例え.jp"},
	} {
		pair, err := m.IssuePair(p)
		require.NoError(t, err)

		got, err := m.VerifyAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, p, got)

		got, err = m.VerifyRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestManager_SecretsAreDisjoint(t *testing.T) {
	m := newTestManager(t)
	p := Payload{ID: "1", Email: "a@b.com"}

	pair, err := m.IssuePair(p)
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = m.VerifyAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestManager_RefreshTokenExpiresAfter90Days(t *testing.T) {
	m := newTestManager(t)
	now := time.Now()

	old := m.WithClock(func() time.Time { return now.Add(-91 * 24 * time.Hour) })
	tok, err := old.IssueRefreshToken(Payload{ID: "1", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	recent := m.WithClock(func() time.Time { return now.Add(-89 * 24 * time.Hour) })
	tok, err = recent.IssueRefreshToken(Payload{ID: "1", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(tok)
	assert.NoError(t, err)
}

func TestManager_AccessTokenExpiry(t *testing.T) {
	m := newTestManager(t)
	issuedAt := time.Now()

	tok, err := m.WithClock(func() time.Time { return issuedAt }).IssueAccessToken(Payload{ID: "1"})
	require.NoError(t, err)

	later := m.WithClock(func() time.Time { return issuedAt.Add(61 * time.Minute) })
	_, err = later.VerifyAccessToken(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	sooner := m.WithClock(func() time.Time { return issuedAt.Add(59 * time.Minute) })
	_, err = sooner.VerifyAccessToken(tok)
	assert.NoError(t, err)
}

func TestManager_WithClockDoesNotMutateOriginal(t *testing.T) {
	m := newTestManager(t)
	_ = m.WithClock(func() time.Time { return time.Unix(0, 0) })

	tok, err := m.IssueAccessToken(Payload{ID: "1"})
	require.NoError(t, err)
	_, err = m.VerifyAccessToken(tok)
	assert.NoError(t, err)
}
