package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cpguide/internal/client/client"
	"github.com/dmitrijs2005/cpguide/internal/client/services"
	"github.com/dmitrijs2005/cpguide/internal/client/validation"
	"github.com/dmitrijs2005/cpguide/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for email and password, validates them and authenticates.
//
// A 404 from the server means the account does not exist and the user is
// pointed to signup. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.printer.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.printer.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.validator.ValidateLogin(validation.LoginForm{Email: email, Password: string(password)}); err != nil {
		a.reportInvalid(err)
		return err
	}

	res, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.reportLoginError(err)
		return err
	}

	if err := a.restore(ctx); err != nil {
		a.log.Warn(ctx, "failed to re-evaluate session", "error", err)
	}
	a.printer.Success("Login Successful")
	if name := res.Identity.FullName(); name != "" {
		a.printer.Info("Welcome, %s!", name)
	}
	return nil
}

// Signup prompts for name, email and password and creates an account. It
// does not log the user in.
func (a *App) Signup(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", a.printer.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", a.printer.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.printer.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.printer.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := validation.SignupForm{FirstName: firstName, LastName: lastName, Email: email, Password: string(password)}
	if err := a.validator.ValidateSignup(form); err != nil {
		a.reportInvalid(err)
		return err
	}

	if _, err := a.authService.Signup(ctx, firstName, lastName, email, password); err != nil {
		a.reportSignupError(err)
		return err
	}

	a.printer.Success("Account created!")
	a.printer.Info("You can now log in with 'login'.")
	return nil
}

// Logout wipes the local session; the auth service navigates back to the
// login prompt.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.printer.Error("Logout incomplete: %v", err)
		return err
	}
	a.printer.Success("Logged out")
	return nil
}

// Status shows who is logged in, the token subject and expiry, and how many
// topics are completed.
func (a *App) Status(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printer.Info("Not logged in")
		return nil
	}

	if name := a.identity.FullName(); name != "" {
		a.printer.Info("Logged in as %s", name)
	} else {
		a.printer.Info("Logged in")
	}

	if claims, err := a.sessionService.Claims(ctx); err != nil {
		a.log.Debug(ctx, "token claims unavailable", "error", err)
	} else {
		a.printClaims(claims)
	}

	m, err := a.session.ProgressMap(ctx)
	if err != nil {
		a.printer.Error("Could not read progress: %v", err)
		return err
	}
	a.printer.Info("Completed topics: %d", len(m))
	return nil
}

func (a *App) printClaims(claims *services.TokenClaims) {
	if claims.Subject != "" {
		a.printer.Info("Subject: %s", claims.Subject)
	}
	if claims.ExpiresAt.IsZero() {
		return
	}
	expires := claims.ExpiresAt.Local().Format(time.RFC1123)
	if claims.Expired(time.Now()) {
		a.printer.Error("Token expired at %s", expires)
	} else {
		a.printer.Info("Token expires at %s", expires)
	}
}

func (a *App) reportInvalid(err error) {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		a.printer.Error("Invalid inputs! %s", verr.Error())
		return
	}
	a.printer.Error("Invalid inputs! %v", err)
}

func (a *App) reportLoginError(err error) {
	var authErr *client.AuthError
	switch {
	case errors.As(err, &authErr) && authErr.Status == 0:
		a.printer.Error("Server unavailable, try again later")
	case errors.As(err, &authErr) && authErr.Status == http.StatusNotFound:
		a.printer.Error("Login failed: %s", messageOr(authErr.Message(), "user not found"))
		a.printer.Info("No account with that email. Create one with 'signup'.")
	case errors.As(err, &authErr):
		a.printer.Error("Login failed: %s", messageOr(authErr.Message(), http.StatusText(authErr.Status)))
	case errors.Is(err, client.ErrMalformedResponse):
		a.printer.Error("Login failed: unexpected server response")
	default:
		a.printer.Error("Login failed: %v", err)
	}
}

func (a *App) reportSignupError(err error) {
	var signupErr *client.SignupError
	switch {
	case errors.As(err, &signupErr) && signupErr.Status == 0:
		a.printer.Error("Server unavailable, try again later")
	case errors.As(err, &signupErr) && signupErr.Status == http.StatusConflict:
		a.printer.Error("Signup failed: %s", messageOr(signupErr.Message(), "account already exists"))
		a.printer.Info("That email is already registered. Log in with 'login'.")
	case errors.As(err, &signupErr):
		a.printer.Error("Signup failed: %s", messageOr(signupErr.Message(), http.StatusText(signupErr.Status)))
	default:
		a.printer.Error("Signup failed: %v", err)
	}
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

