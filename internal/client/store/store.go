// Package store owns the persisted session: the bearer token and the
// progress snapshots kept as cookies, and the display state kept in local
// storage.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/cpguide/internal/client/models"
	"github.com/dmitrijs2005/cpguide/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/cpguide/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/cpguide/internal/dbx"
	"github.com/dmitrijs2005/cpguide/internal/logging"
)

// Cookie names.
const (
	CookieToken    = "jwt"
	CookieProgress = "progress"
	CookieProblems = "problems"
)

// Local storage keys.
const (
	KeyFirstName = "fName"
	KeyLastName  = "lName"
	KeyColorMode = "topic-list-color-mode"
)

// HeaderCache is an in-memory copy of the bearer token, typically the API
// client's Authorization header.
type HeaderCache interface {
	SetBearer(token string)
	ClearBearer()
}

// CredentialStore is the single owner of persisted session state. All writes
// are whole-value upserts; multi-key writes run in one transaction.
type CredentialStore struct {
	db       *sql.DB
	cookies  cookies.Repository
	local    localstore.Repository
	secure   bool
	sameSite http.SameSite
	log      logging.Logger

	mu     sync.RWMutex
	caches []HeaderCache
}

// NewCredentialStore binds the store to db. Cookies are written secure-only
// when production is true and always with SameSite=Strict.
func NewCredentialStore(db *sql.DB, production bool, log logging.Logger) *CredentialStore {
	if log == nil {
		log = logging.Discard()
	}
	return &CredentialStore{
		db:       db,
		cookies:  cookies.NewSQLiteRepository(db),
		local:    localstore.NewSQLiteRepository(db),
		secure:   production,
		sameSite: http.SameSiteStrictMode,
		log:      log,
	}
}

// AttachHeaderCache registers c to follow every token change.
func (s *CredentialStore) AttachHeaderCache(c HeaderCache) {
	s.mu.Lock()
	s.caches = append(s.caches, c)
	s.mu.Unlock()
}

func (s *CredentialStore) setBearer(token string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.caches {
		c.SetBearer(token)
	}
}

func (s *CredentialStore) clearBearer() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.caches {
		c.ClearBearer()
	}
}

func (s *CredentialStore) cookie(name, value string) cookies.Cookie {
	return cookies.Cookie{Name: name, Value: value, Secure: s.secure, SameSite: s.sameSite}
}

func (s *CredentialStore) withTx(ctx context.Context, fn func(ctx context.Context, c cookies.Repository, l localstore.Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, cookies.NewSQLiteRepository(tx), localstore.NewSQLiteRepository(tx))
	})
}

// SetToken stores the bearer token cookie and pushes it to every header cache.
func (s *CredentialStore) SetToken(ctx context.Context, token string) error {
	if err := s.cookies.Set(ctx, s.cookie(CookieToken, token)); err != nil {
		return err
	}
	s.setBearer(token)
	return nil
}

// Token reports ok=false when no token is stored.
func (s *CredentialStore) Token(ctx context.Context) (string, bool, error) {
	c, err := s.cookies.Get(ctx, CookieToken)
	if err != nil {
		return "", false, err
	}
	if c == nil || c.Value == "" {
		return "", false, nil
	}
	return c.Value, true, nil
}

// ClearToken drops the cached bearer header and deletes the token cookie.
func (s *CredentialStore) ClearToken(ctx context.Context) error {
	// the cached header goes even if the delete fails
	s.clearBearer()
	return s.cookies.Delete(ctx, CookieToken)
}

// SetProgressMap replaces the progress cookie with m encoded as JSON.
func (s *CredentialStore) SetProgressMap(ctx context.Context, m models.ProgressMap) error {
	return setProgressMap(ctx, s.cookies, s.cookie, m)
}

// ProgressMap returns the stored map, or an empty one when it is absent or
// cannot be decoded.
func (s *CredentialStore) ProgressMap(ctx context.Context) (models.ProgressMap, error) {
	c, err := s.cookies.Get(ctx, CookieProgress)
	if err != nil {
		return nil, err
	}
	m := models.ProgressMap{}
	if c == nil {
		return m, nil
	}
	if err := json.Unmarshal([]byte(c.Value), &m); err != nil || m == nil {
		s.log.Warn(ctx, "stored progress map is unreadable", "error", err)
		return models.ProgressMap{}, nil
	}
	return m, nil
}

// ClearProgressMap deletes the progress cookie.
func (s *CredentialStore) ClearProgressMap(ctx context.Context) error {
	return s.cookies.Delete(ctx, CookieProgress)
}

// SetSolvedIndex replaces the solved-problems cookie with idx encoded as JSON.
func (s *CredentialStore) SetSolvedIndex(ctx context.Context, idx models.SolvedIndex) error {
	return setSolvedIndex(ctx, s.cookies, s.cookie, idx)
}

// SolvedIndex returns the stored index, nil when absent or unreadable.
func (s *CredentialStore) SolvedIndex(ctx context.Context) (models.SolvedIndex, error) {
	c, err := s.cookies.Get(ctx, CookieProblems)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	var idx models.SolvedIndex
	if err := json.Unmarshal([]byte(c.Value), &idx); err != nil {
		s.log.Warn(ctx, "stored solved index is unreadable", "error", err)
		return nil, nil
	}
	return idx, nil
}

// SolvedProblems returns the problem ids recorded for topicID. The result is
// never nil.
func (s *CredentialStore) SolvedProblems(ctx context.Context, topicID string) ([]string, error) {
	idx, err := s.SolvedIndex(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Problems(topicID), nil
}

// SetIdentity stores both name parts in local storage in one transaction.
func (s *CredentialStore) SetIdentity(ctx context.Context, id models.Identity) error {
	return s.withTx(ctx, func(ctx context.Context, _ cookies.Repository, l localstore.Repository) error {
		return setIdentity(ctx, l, id)
	})
}

// Identity reports ok=false when neither name is stored.
func (s *CredentialStore) Identity(ctx context.Context) (models.Identity, bool, error) {
	entries, err := s.local.List(ctx)
	if err != nil {
		return models.Identity{}, false, err
	}
	first, okFirst := entries[KeyFirstName]
	last, okLast := entries[KeyLastName]
	return models.Identity{FirstName: first, LastName: last}, okFirst || okLast, nil
}

// ColorMode reports ok=false when no preference was saved.
func (s *CredentialStore) ColorMode(ctx context.Context) (string, bool, error) {
	return s.local.Get(ctx, KeyColorMode)
}

// SetColorMode saves the color mode preference.
func (s *CredentialStore) SetColorMode(ctx context.Context, mode string) error {
	return s.local.Set(ctx, KeyColorMode, mode)
}

// ClearLocal wipes all local storage: identity and preferences.
func (s *CredentialStore) ClearLocal(ctx context.Context) error {
	return s.local.Clear(ctx)
}

// ReconcileCookies rewrites every stored cookie whose Secure or SameSite
// attribute differs from what this store writes, e.g. a session created in
// development and reopened in production. Values are kept. It returns the
// number of cookies rewritten.
func (s *CredentialStore) ReconcileCookies(ctx context.Context) (int, error) {
	n := 0
	err := s.withTx(ctx, func(ctx context.Context, c cookies.Repository, _ localstore.Repository) error {
		list, err := c.List(ctx)
		if err != nil {
			return err
		}
		for _, ck := range list {
			if ck.Secure == s.secure && ck.SameSite == s.sameSite {
				continue
			}
			if err := c.Set(ctx, s.cookie(ck.Name, ck.Value)); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info(ctx, "cookie attributes updated", "count", n, "secure", s.secure)
	}
	return n, nil
}

// ClearAll wipes local storage and every cookie in one transaction and drops
// the cached bearer header.
func (s *CredentialStore) ClearAll(ctx context.Context) error {
	s.clearBearer()
	return s.withTx(ctx, func(ctx context.Context, c cookies.Repository, l localstore.Repository) error {
		if err := l.Clear(ctx); err != nil {
			return err
		}
		return c.Clear(ctx)
	})
}

// SaveLogin persists a fresh session in one transaction and, once committed,
// points every header cache at the new token.
func (s *CredentialStore) SaveLogin(ctx context.Context, res *models.LoginResult) error {
	err := s.withTx(ctx, func(ctx context.Context, c cookies.Repository, l localstore.Repository) error {
		if err := c.Set(ctx, s.cookie(CookieToken, res.Token)); err != nil {
			return err
		}
		if err := setIdentity(ctx, l, res.Identity); err != nil {
			return err
		}
		if err := setProgressMap(ctx, c, s.cookie, res.ProgressMap); err != nil {
			return err
		}
		return setSolvedIndex(ctx, c, s.cookie, res.SolvedIndex)
	})
	if err != nil {
		return fmt.Errorf("save login: %w", err)
	}
	s.setBearer(res.Token)
	return nil
}

// SaveProgress overwrites both progress snapshots in one transaction.
func (s *CredentialStore) SaveProgress(ctx context.Context, m models.ProgressMap, idx models.SolvedIndex) error {
	err := s.withTx(ctx, func(ctx context.Context, c cookies.Repository, _ localstore.Repository) error {
		if err := setProgressMap(ctx, c, s.cookie, m); err != nil {
			return err
		}
		return setSolvedIndex(ctx, c, s.cookie, idx)
	})
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

type cookieFunc func(name, value string) cookies.Cookie

func setProgressMap(ctx context.Context, repo cookies.Repository, mk cookieFunc, m models.ProgressMap) error {
	if m == nil {
		m = models.ProgressMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode progress map: %w", err)
	}
	return repo.Set(ctx, mk(CookieProgress, string(b)))
}

func setSolvedIndex(ctx context.Context, repo cookies.Repository, mk cookieFunc, idx models.SolvedIndex) error {
	if idx == nil {
		idx = models.SolvedIndex{}
	}
	b, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("encode solved index: %w", err)
	}
	return repo.Set(ctx, mk(CookieProblems, string(b)))
}

func setIdentity(ctx context.Context, repo localstore.Repository, id models.Identity) error {
	if err := repo.Set(ctx, KeyFirstName, id.FirstName); err != nil {
		return err
	}
	return repo.Set(ctx, KeyLastName, id.LastName)
}
