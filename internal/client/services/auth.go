// Package services contains the application services behind the CLI.
// This file defines the authentication service: login, signup and logout on
// top of the backend client and the local credential store.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cpguide/internal/client/client"
	"github.com/dmitrijs2005/cpguide/internal/client/models"
	"github.com/dmitrijs2005/cpguide/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session.
//   - Signup: create a new user on the server; does not log in.
//   - Logout: wipe all local session state and go to the login surface.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error)
	Signup(ctx context.Context, firstName, lastName, email string, password []byte) (any, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  SessionStore
	nav    Navigator
	log    logging.Logger
}

// NewAuthService constructs an AuthService backed by the given client, session
// store and navigator.
func NewAuthService(c client.Client, store SessionStore, nav Navigator, log logging.Logger) AuthService {
	return &authService{client: c, store: store, nav: nav, log: log}
}

// Login posts the credentials and, on success, stores the token, the user's
// name, the flattened progress map and the solved-problems index together.
// Errors from the server come back as *client.AuthError.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error) {
	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		a.log.Debug(ctx, "login rejected", "email", email, "error", err)
		return nil, err
	}

	res := &models.LoginResult{
		Token: resp.Token,
		Identity: models.Identity{
			FirstName: resp.User.FirstName,
			LastName:  resp.User.LastName,
		},
		ProgressMap: resp.User.Progress.Completed(),
		SolvedIndex: resp.User.SolvedProblems,
	}

	if err := a.store.SaveLogin(ctx, res); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	a.log.Info(ctx, "logged in", "email", email, "topics_completed", len(res.ProgressMap))
	return res, nil
}

// Signup registers the account and returns the backend's success body as
// decoded JSON of any shape. Nothing is stored locally.
func (a *authService) Signup(ctx context.Context, firstName, lastName, email string, password []byte) (any, error) {
	resp, err := a.client.Signup(ctx, client.SignupRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(password),
	})
	if err != nil {
		a.log.Debug(ctx, "signup rejected", "email", email, "error", err)
		return nil, err
	}
	a.log.Info(ctx, "signed up", "email", email)
	return resp, nil
}

// Logout clears local storage and every cookie, then navigates to the login
// surface. Navigation happens even when clearing fails.
func (a *authService) Logout(ctx context.Context) error {
	err := a.store.ClearAll(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
		err = fmt.Errorf("session clearing error: %w", err)
	} else {
		a.log.Info(ctx, "logged out")
	}
	a.nav.Navigate(ctx, LoginPath)
	return err
}
