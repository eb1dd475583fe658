package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGitHub(t *testing.T, handler http.Handler) *GitHub {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGitHub(srv.URL, 5*time.Second, discardLogger())
}

func TestAuthorize_Success(t *testing.T) {
	var gotReq authorizationRequest

	g := newTestGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/authorizations", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "octocat", user)
		assert.Equal(t, "hunter2", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"token": "newtok"})
	}))

	token, err := g.Authorize(context.Background(), "octocat", "hunter2",
		[]string{"user", "repo", "gist"}, "ghterm", "https://github.com/ghterm/ghterm", nil)
	require.NoError(t, err)

	assert.Equal(t, "newtok", token)
	assert.Equal(t, []string{"user", "repo", "gist"}, gotReq.Scopes)
	assert.Equal(t, "ghterm", gotReq.Note)
}

func TestAuthorize_TwoFactorRetry(t *testing.T) {
	calls := 0

	g := newTestGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-GitHub-OTP") == "" {
			w.Header().Set("X-GitHub-OTP", "required; sms")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "123456", r.Header.Get("X-GitHub-OTP"))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"token": "newtok"})
	}))

	twoFactor := func() string {
		calls++
		return "123456"
	}

	token, err := g.Authorize(context.Background(), "octocat", "hunter2",
		[]string{"user"}, "ghterm", "", twoFactor)
	require.NoError(t, err)

	assert.Equal(t, "newtok", token)
	assert.Equal(t, 1, calls, "callback runs once per server demand")
}

func TestAuthorize_DuplicateNote(t *testing.T) {
	g := newTestGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	_, err := g.Authorize(context.Background(), "octocat", "hunter2",
		[]string{"user"}, "ghterm", "", nil)
	assert.ErrorIs(t, err, ErrAuthorizationRejected)
}

func TestAuthorize_ServerError(t *testing.T) {
	g := newTestGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := g.Authorize(context.Background(), "octocat", "hunter2",
		[]string{"user"}, "ghterm", "", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthorizationRejected)
}

func TestLoginToken(t *testing.T) {
	g := newTestGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/user", r.URL.Path)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"login": "octocat"})
	}))

	sess, err := g.LoginToken(context.Background(), "octocat", "tok123")
	require.NoError(t, err)
	assert.Equal(t, "octocat", sess.Login)
	require.NotNil(t, sess.Client)
}

func TestLoginBasic_TwoFactorRetry(t *testing.T) {
	calls := 0

	g := newTestGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/user", r.URL.Path)

		if r.Header.Get("X-GitHub-OTP") == "" {
			w.Header().Set("X-GitHub-OTP", "required; app")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "octocat", user)
		assert.Equal(t, "hunter2", pass)
		json.NewEncoder(w).Encode(map[string]string{"login": "octocat"})
	}))

	twoFactor := func() string {
		calls++
		return "654321"
	}

	sess, err := g.LoginBasic(context.Background(), "octocat", "hunter2", twoFactor)
	require.NoError(t, err)
	assert.Equal(t, "octocat", sess.Login)
	assert.Equal(t, 1, calls)
}

func TestLoginBasic_BadCredentials(t *testing.T) {
	g := newTestGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Plain 401 without an OTP demand must not invoke the callback
		w.WriteHeader(http.StatusUnauthorized)
	}))

	twoFactor := func() string {
		t.Fatal("two-factor callback must not run without a server demand")
		return ""
	}

	_, err := g.LoginBasic(context.Background(), "octocat", "wrong", twoFactor)
	assert.Error(t, err)
}
