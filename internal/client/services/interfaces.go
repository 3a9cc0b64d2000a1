// Package services contains the application services behind the CLI:
// authentication, session state, progress sync and preferences.
package services

import (
	"context"

	"github.com/dmitrijs2005/cpguide/internal/client/models"
)

// SessionStore is the slice of the credential store the services need.
type SessionStore interface {
	Token(ctx context.Context) (string, bool, error)
	ClearProgressMap(ctx context.Context) error
	ClearLocal(ctx context.Context) error
	ClearAll(ctx context.Context) error
	SaveLogin(ctx context.Context, res *models.LoginResult) error
	SaveProgress(ctx context.Context, m models.ProgressMap, idx models.SolvedIndex) error
}

// PreferenceStore persists the color mode.
type PreferenceStore interface {
	ColorMode(ctx context.Context) (string, bool, error)
	SetColorMode(ctx context.Context, mode string) error
}

// Navigator moves the UI to another surface, e.g. the login prompt.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, path string) { f(ctx, path) }

const LoginPath = "/login"
