package api

import (
	"context"
	"errors"

	"github.com/google/go-github/v57/github"
)

// ErrAuthorizationRejected indicates the server refused to create an
// authorization, typically because one with the same note already exists.
var ErrAuthorizationRejected = errors.New("authorization rejected")

// TwoFactorFunc supplies a one-time second-factor code when the server
// requests one. Returning an empty string abandons the attempt.
type TwoFactorFunc func() string

// Session is an authenticated GitHub API session
type Session struct {
	Login  string
	Client *github.Client
}

// Service is the remote GitHub collaborator used by the authenticator
type Service interface {
	// LoginToken builds a session authenticated with a bearer token
	LoginToken(ctx context.Context, login, token string) (*Session, error)

	// LoginBasic builds a session authenticated with a password,
	// invoking twoFactor whenever the server demands a second factor
	LoginBasic(ctx context.Context, login, password string, twoFactor TwoFactorFunc) (*Session, error)

	// Authorize creates a personal access token with the given scopes
	// and note, returning the token value
	Authorize(ctx context.Context, login, password string, scopes []string, note, noteURL string, twoFactor TwoFactorFunc) (string, error)
}
