package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ghterm/ghterm/internal/api"
	"github.com/ghterm/ghterm/internal/config"
	"github.com/ghterm/ghterm/internal/prompts"
)

const (
	authNote    = "ghterm"
	authNoteURL = "https://github.com/ghterm/ghterm"
)

// AuthScopes are the scopes requested when creating a new authorization
var AuthScopes = []string{"user", "repo", "gist"}

// Session is an authenticated session ready for API use. FeedURL is
// set only for password-based sessions.
type Session struct {
	API     *api.Session
	Login   string
	FeedURL string
}

// Authenticator decides on each run whether saved credentials can be
// reused or an interactive authorization flow is needed, and persists
// the outcome.
type Authenticator struct {
	store    *config.Store
	svc      api.Service
	prompter prompts.Prompter
	logger   *slog.Logger
}

// New creates an authenticator. All collaborators are injected so
// tests can stub terminal input and the remote API.
func New(store *config.Store, svc api.Service, prompter prompts.Prompter, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		store:    store,
		svc:      svc,
		prompter: prompter,
		logger:   logger,
	}
}

// Authenticate logs into GitHub. Saved credentials are reused when
// present, preferring the token over the password. Any failure to load
// them routes to the interactive authorization flow instead of
// surfacing an error.
func (a *Authenticator) Authenticate(ctx context.Context) (*Session, error) {
	path, err := a.store.ResolvePath(ConfigFile)
	if err != nil {
		return nil, err
	}

	values, err := a.store.ReadSection(path, ConfigSection)
	if err != nil {
		a.logger.Warn("no usable saved credentials, starting interactive authorization",
			"path", path,
			"reason", err)
		return a.interactive(ctx, path)
	}

	creds := credentialsFrom(values)
	if err := creds.Validate(); err != nil {
		a.logger.Warn("saved credentials incomplete, starting interactive authorization",
			"path", path,
			"reason", err)
		return a.interactive(ctx, path)
	}

	if creds.Token != "" {
		sess, err := a.svc.LoginToken(ctx, creds.Login, creds.Token)
		if err != nil {
			return nil, err
		}
		return &Session{API: sess, Login: sess.Login}, nil
	}

	sess, err := a.svc.LoginBasic(ctx, creds.Login, creds.Password, prompts.TwoFactor(a.prompter))
	if err != nil {
		return nil, err
	}
	return &Session{API: sess, Login: sess.Login, FeedURL: creds.FeedURL}, nil
}

// Reauthorize runs the interactive authorization flow unconditionally,
// replacing any saved credentials
func (a *Authenticator) Reauthorize(ctx context.Context) (*Session, error) {
	path, err := a.store.ResolvePath(ConfigFile)
	if err != nil {
		return nil, err
	}
	return a.interactive(ctx, path)
}

// interactive prompts for a login and password, creates a new
// authorization and persists the result. Nothing is written on failure.
func (a *Authenticator) interactive(ctx context.Context, path string) (*Session, error) {
	login, err := prompts.RequireVisible(a.prompter, "User Login: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read login: %w", err)
	}

	password, err := prompts.RequireHidden(a.prompter, "Password: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	token, err := a.svc.Authorize(ctx, login, password, AuthScopes, authNote, authNoteURL, prompts.TwoFactor(a.prompter))
	if err != nil {
		if errors.Is(err, api.ErrAuthorizationRejected) {
			return nil, fmt.Errorf("%w\nVisit https://github.com/settings/tokens and revoke or rename the existing %q token,\nor copy its value into %s as %s", err, authNote, path, KeyUserToken)
		}
		return nil, err
	}

	sess, err := a.svc.LoginToken(ctx, login, token)
	if err != nil {
		return nil, err
	}

	creds := Credentials{
		Login:    login,
		Password: password,
		Token:    token,
	}
	if err := a.SaveCredentials(creds); err != nil {
		return nil, fmt.Errorf("failed to save credentials: %w", err)
	}

	a.logger.Info("authorization created and saved", "login", login, "path", path)

	return &Session{API: sess, Login: sess.Login}, nil
}

// SaveCredentials persists credentials as a fresh config file,
// completely replacing any previous contents
func (a *Authenticator) SaveCredentials(creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	path, err := a.store.ResolvePath(ConfigFile)
	if err != nil {
		return err
	}
	return a.store.WriteSection(path, ConfigSection, creds.values())
}

// LoadCredentials reads saved credentials without logging in
func (a *Authenticator) LoadCredentials() (Credentials, error) {
	path, err := a.store.ResolvePath(ConfigFile)
	if err != nil {
		return Credentials{}, err
	}
	values, err := a.store.ReadSection(path, ConfigSection)
	if err != nil {
		return Credentials{}, err
	}
	return credentialsFrom(values), nil
}

// Logout removes the credentials file. It is idempotent: logging out
// with no saved credentials succeeds.
func (a *Authenticator) Logout() error {
	path, err := a.store.ResolvePath(ConfigFile)
	if err != nil {
		return err
	}
	return a.store.Remove(path)
}
