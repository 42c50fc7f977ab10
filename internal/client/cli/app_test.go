package cli

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeabtsegataye/equb-system/internal/client/config"
)

func TestIsLoggedIn_NoService(t *testing.T) {
	app := &App{}
	if app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == false without an auth service")
	}
}

func TestIsLoggedIn_DelegatesToService(t *testing.T) {
	f := &fakeAuth{loggedIn: true}
	app := &App{authService: f}
	if !app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == true when the service holds a token")
	}
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	app := &App{}
	var buf bytes.Buffer

	old := log.Default().Writer()
	defer log.SetOutput(old)
	log.SetOutput(&buf)

	app.setMode(ModeOnline)
	if app.Mode != ModeOnline {
		t.Fatalf("expected mode to be %q, got %q", ModeOnline, app.Mode)
	}
	if got := buf.String(); got == "" {
		t.Fatalf("expected log output on mode change, got empty")
	}

	buf.Reset()

	app.setMode(ModeOnline)
	if got := buf.String(); got != "" {
		t.Fatalf("expected no log output when mode doesn't change, got: %q", got)
	}

	app.setMode(ModeOffline)
	if app.Mode != ModeOffline {
		t.Fatalf("expected mode to be %q, got %q", ModeOffline, app.Mode)
	}
}

func TestStartOnlineStatusWatcher_TracksPing(t *testing.T) {
	old := log.Default().Writer()
	defer log.SetOutput(old)
	log.SetOutput(&bytes.Buffer{})

	f := &fakeAuth{pingErr: errors.New("down")}
	app := &App{authService: f}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		app.mu.Lock()
		defer app.mu.Unlock()
		return app.Mode == ModeOffline
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestNewApp(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()

	app, err := NewApp(c)
	require.NoError(t, err)
	assert.NotNil(t, app.authService)
	assert.False(t, app.isLoggedIn())
}
