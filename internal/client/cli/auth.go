package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/progresspilot/internal/client/api"
	"github.com/dmitrijs2005/progresspilot/internal/client/session"
)

// Register creates an account and logs straight in: the server answers a
// successful signup with a session token.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	country, err := GetSimpleText(a.reader, "Enter country (optional)", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	result, err := a.client.Register(ctx, email, string(password), name, country)
	if err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	a.startSession(result)
	printlnFn(fmt.Sprintf("Registered as %s", result.User.Email))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	result, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.startSession(result)
	printlnFn(fmt.Sprintf("Welcome back, %s", result.User.Name))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.SetToken("")
	a.user = nil

	if err := a.session.Clear(); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Logged out")
	return nil
}

// WhoAmI asks the server who the current token belongs to, so it doubles as a
// session validity check.
func (a *App) WhoAmI(ctx context.Context) error {
	if a.user == nil {
		printlnFn("Not logged in")
		return nil
	}

	user, err := a.client.Me(ctx)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("%s <%s>", user.Name, user.Email))
	return nil
}

// Ping probes server reachability.
func (a *App) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		printlnFn("Server unreachable:", err.Error())
		return err
	}
	printlnFn("Server is up")
	return nil
}

// startSession installs the token on the API client and persists it so the
// next run starts logged in. A failed save is reported but does not undo the
// in-memory login.
func (a *App) startSession(result *api.AuthResult) {
	a.client.SetToken(result.Token)
	user := result.User
	a.user = &user

	if err := a.session.Save(&session.Session{Token: result.Token, User: result.User}); err != nil {
		printlnFn("warning: could not save session:", err.Error())
	}
}
