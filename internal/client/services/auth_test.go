package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/cpguide/internal/client/client"
	"github.com/dmitrijs2005/cpguide/internal/client/models"
	"github.com/dmitrijs2005/cpguide/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginT1() *client.LoginResponse {
	return &client.LoginResponse{
		Token: "T1",
		User: &client.LoginUser{
			FirstName:      "Ada",
			LastName:       "Lovelace",
			SolvedProblems: models.SolvedIndex{{TopicID: "t1", Problems: []string{"p1"}}},
			Progress: models.ProgressRecord{
				{SubCategories: []models.SubCategory{{Topics: []string{"t1", "t2"}}}},
			},
		},
	}
}

func TestLogin_PersistsSession(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	fc := &fakeClient{LoginResp: loginT1()}
	svc := NewAuthService(fc, st, &recordingNav{}, logging.Discard())

	res, err := svc.Login(ctx, "a@b.co", []byte("Secret1!"))
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", fc.LastLoginEmail)
	assert.Equal(t, "Secret1!", fc.LastLoginPassword)
	assert.Equal(t, models.ProgressMap{"t1": true, "t2": true}, res.ProgressMap)

	tok, ok, err := st.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "T1", tok)

	m, err := st.ProgressMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressMap{"t1": true, "t2": true}, m)

	p, err := st.SolvedProblems(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, p)

	id, ok, err := st.Identity(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.Identity{FirstName: "Ada", LastName: "Lovelace"}, id)
}

func TestLogin_ErrorLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	authErr := &client.AuthError{Status: http.StatusNotFound, Payload: map[string]any{"error": "user not found"}}
	svc := NewAuthService(&fakeClient{LoginErr: authErr}, st, &recordingNav{}, logging.Discard())

	_, err := svc.Login(ctx, "a@b.co", []byte("Secret1!"))
	var got *client.AuthError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, http.StatusNotFound, got.Status)

	_, ok, err := st.Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSignup_PassesFieldsAndReturnsBody(t *testing.T) {
	fc := &fakeClient{SignupResp: map[string]any{"message": "ok"}}
	svc := NewAuthService(fc, newStore(t), &recordingNav{}, logging.Discard())

	resp, err := svc.Signup(context.Background(), "Ada", "Lovelace", "a@b.co", []byte("Secret1!"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "ok"}, resp)
	assert.Equal(t, client.SignupRequest{FirstName: "Ada", LastName: "Lovelace", Email: "a@b.co", Password: "Secret1!"}, fc.LastSignup)
}

func TestSignup_StringBodyIsSuccess(t *testing.T) {
	fc := &fakeClient{SignupResp: "User created successfully"}
	svc := NewAuthService(fc, newStore(t), &recordingNav{}, logging.Discard())

	resp, err := svc.Signup(context.Background(), "Ada", "Lovelace", "a@b.co", []byte("Secret1!"))
	require.NoError(t, err)
	assert.Equal(t, "User created successfully", resp)
}

func TestSignup_ErrorPayload(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	fc := &fakeClient{SignupErr: &client.SignupError{Status: http.StatusConflict, Payload: map[string]any{"error": "email taken"}}}
	svc := NewAuthService(fc, st, &recordingNav{}, logging.Discard())

	_, err := svc.Signup(ctx, "Ada", "Lovelace", "a@b.co", []byte("Secret1!"))
	var got *client.SignupError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, map[string]any{"error": "email taken"}, got.Payload)

	_, ok, err := st.Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_ClearsEverythingAndNavigates(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	nav := &recordingNav{}
	svc := NewAuthService(&fakeClient{LoginResp: loginT1()}, st, nav, logging.Discard())
	session := NewSessionService(st, logging.Discard())

	_, err := svc.Login(ctx, "a@b.co", []byte("Secret1!"))
	require.NoError(t, err)
	require.NoError(t, st.SetColorMode(ctx, "dark"))

	ok, err := session.Init(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, []string{"/login"}, nav.paths)

	_, ok, err = st.Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	m, err := st.ProgressMap(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)

	p, err := st.SolvedProblems(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, p)

	_, ok, err = st.Identity(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = st.ColorMode(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = session.Init(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, session.IsAuthenticated())
}

type failingClearStore struct {
	SessionStore
}

func (failingClearStore) ClearAll(context.Context) error { return errors.New("disk full") }

func TestLogout_NavigatesEvenOnError(t *testing.T) {
	nav := &recordingNav{}
	svc := NewAuthService(&fakeClient{}, failingClearStore{newStore(t)}, nav, logging.Discard())

	err := svc.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"/login"}, nav.paths)
}
