package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/session"
)

// Login prompts for the admin ID and secret and opens an admin session.
// Rejected credentials are reported inline and leave the session anonymous.
func (a *App) Login(ctx context.Context, args []string) error {
	if a.isAdmin() {
		printlnFn("Already logged in.")
		return nil
	}

	id, err := GetSimpleText(a.reader, "Admin ID", a.out)
	if err != nil {
		return err
	}
	secret, err := GetPassword("Secret", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	_, err = a.gate.Login(ctx, id, string(secret))
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			printlnFn(err.Error())
		} else {
			a.logger.Error(ctx, "login failed", "error", err)
			printlnFn("Login failed, try again later.")
		}
		return err
	}

	a.refreshView()
	printlnFn("Logged in as admin.")
	return nil
}

// Logout ends the admin session, drops any open form and hides inactive
// listings again.
func (a *App) Logout(ctx context.Context, args []string) error {
	if !a.isAdmin() {
		printlnFn("Not logged in.")
		return nil
	}
	a.gate.Logout()
	a.refreshView()
	printlnFn("Logged out.")
	return nil
}
