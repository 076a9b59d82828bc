package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophvote/internal/client/models"
	"github.com/dmitrijs2005/gophvote/internal/common"
)

var errPINMismatch = errors.New("the PINs do not match")

// Login prompts for a student id and logs in with it. The ballot is loaded
// right after a successful login.
func (a *App) Login(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter student ID", a.out)
	if err != nil {
		return err
	}

	user, err := a.session.LoginManual(ctx, id)
	if err != nil {
		return err
	}

	a.welcome(user)
	a.loadBallot(ctx)
	return nil
}

// BiometricLogin confirms the student on the device before logging in.
func (a *App) BiometricLogin(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter student ID", a.out)
	if err != nil {
		return err
	}

	user, err := a.session.LoginBiometric(ctx, id)
	if err != nil {
		return err
	}

	a.welcome(user)
	a.loadBallot(ctx)
	return nil
}

// Enroll sets the device PIN used by BiometricLogin.
func (a *App) Enroll(ctx context.Context) error {
	pin, err := getPassword(a.out, "Choose a device PIN")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pin)

	again, err := getPassword(a.out, "Repeat the PIN")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	if !bytes.Equal(pin, again) {
		return errPINMismatch
	}
	if err := a.device.Enroll(ctx, pin); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Device PIN saved. Use 'bio' to log in with it.")
	return nil
}

// Logout ends the session without finishing the ballot.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) welcome(u *models.User) {
	if u == nil {
		return
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.DisplayName())
}
