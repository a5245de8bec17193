package cli

import (
	"context"
	"fmt"
)

// Login prompts for credentials and asks the controller to authenticate.
// Controller errors are display-ready and printed as-is.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.ctrl.Login(ctx, username, password); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	fmt.Fprintln(a.out, "Logged in as", username)
	return nil
}

// Register prompts for a new account's details. On success the user
// still has to log in; no session is created.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}

	if err := a.ctrl.Register(ctx, username, email, password, confirm); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	fmt.Fprintln(a.out, "Registration successful. Please log in.")
	return nil
}

// Logout clears the session and everything derived from it.
func (a *App) Logout(ctx context.Context) error {
	if err := a.ctrl.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
