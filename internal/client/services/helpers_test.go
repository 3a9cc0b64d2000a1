package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/cpguide/internal/client/client"
	"github.com/dmitrijs2005/cpguide/internal/client/store"
	"github.com/dmitrijs2005/cpguide/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func newStore(t *testing.T) *store.CredentialStore {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.NewCredentialStore(db, false, logging.Discard())
}

// ---- fake client ----

type fakeClient struct {
	LoginResp *client.LoginResponse
	LoginErr  error

	SignupResp any
	SignupErr  error

	ProgressResp *client.ProgressResponse
	ProgressErr  error

	LastLoginEmail    string
	LastLoginPassword string
	LastSignup        client.SignupRequest
	ProgressCalls     int
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*client.LoginResponse, error) {
	f.LastLoginEmail, f.LastLoginPassword = email, password
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) Signup(_ context.Context, req client.SignupRequest) (any, error) {
	f.LastSignup = req
	return f.SignupResp, f.SignupErr
}

func (f *fakeClient) Progress(context.Context) (*client.ProgressResponse, error) {
	f.ProgressCalls++
	return f.ProgressResp, f.ProgressErr
}

type recordingNav struct {
	paths []string
}

func (n *recordingNav) Navigate(_ context.Context, path string) {
	n.paths = append(n.paths, path)
}
