// Package services contains the application services behind the CLI.
// This file defines the session service: startup initialization, the
// logged-in check and unverified JWT claims.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/cpguide/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// TokenClaims is what the CLI shows about the current token. The signature
// is not checked; only the server can do that.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}

// SessionService derives the "is authenticated" signal from the stored
// token. It is evaluated on Init only; callers re-run Init after login or
// logout.
type SessionService interface {
	Init(ctx context.Context) (bool, error)
	IsAuthenticated() bool
	Claims(ctx context.Context) (*TokenClaims, error)
}

type sessionService struct {
	store         SessionStore
	log           logging.Logger
	authenticated atomic.Bool
}

// NewSessionService constructs a SessionService over the given session store.
func NewSessionService(store SessionStore, log logging.Logger) SessionService {
	return &sessionService{store: store, log: log}
}

// Init reads the token once. Without one, the progress map and all local
// storage are cleared so no stale user data outlives the session.
func (s *sessionService) Init(ctx context.Context) (bool, error) {
	_, ok, err := s.store.Token(ctx)
	if err != nil {
		s.authenticated.Store(false)
		return false, fmt.Errorf("token reading error: %w", err)
	}
	s.authenticated.Store(ok)
	if ok {
		return true, nil
	}

	if err := s.store.ClearProgressMap(ctx); err != nil {
		return false, fmt.Errorf("progress clearing error: %w", err)
	}
	if err := s.store.ClearLocal(ctx); err != nil {
		return false, fmt.Errorf("local storage clearing error: %w", err)
	}
	s.log.Debug(ctx, "no session token, cleared derived state")
	return false, nil
}

func (s *sessionService) IsAuthenticated() bool {
	return s.authenticated.Load()
}

func (s *sessionService) Claims(ctx context.Context) (*TokenClaims, error) {
	token, ok, err := s.store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAuthenticated
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	res := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		res.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		res.ExpiresAt = exp.Time
	}
	return res, nil
}
