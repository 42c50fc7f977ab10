package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/yeabtsegataye/equb-system/internal/client/client"
	"github.com/yeabtsegataye/equb-system/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and creates a new
// account. A successful signup also starts a session.
//
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, email, password); err != nil {
		log.Printf("Signup unsuccessful: %s", err.Error())
		return err
	}

	a.userName = email
	fmt.Println("Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	a.userName = email
	a.setMode(ModeOnline)
	return nil
}

// Refresh obtains a new access token. An expired refresh token ends the session.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.authService.Refresh(ctx); err != nil {
		if errors.Is(err, client.ErrRefreshExpired) {
			a.userName = ""
		}
		log.Printf("Refresh unsuccessful: %s", err.Error())
		return err
	}
	fmt.Println("Access token refreshed")
	return nil
}

// Verify prints whether the server accepts the current access token.
func (a *App) Verify(ctx context.Context) error {
	ok, err := a.authService.Verify(ctx)
	if err != nil {
		log.Printf("Verify unsuccessful: %s", err.Error())
		return err
	}
	fmt.Printf("verified: %t\n", ok)
	return nil
}

// Logout ends the session locally and asks the server to clear the cookie.
func (a *App) Logout(ctx context.Context) error {
	a.userName = ""
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	return nil
}
