package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com"

// GitHub implements Service against the GitHub REST API
type GitHub struct {
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// NewGitHub creates a GitHub API service
func NewGitHub(baseURL string, timeout time.Duration, logger *slog.Logger) *GitHub {
	return &GitHub{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger,
	}
}

// LoginToken builds a token-authenticated session and verifies it by
// fetching the authenticated user
func (g *GitHub) LoginToken(ctx context.Context, login, token string) (*Session, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = g.timeout

	gh, err := g.newClient(hc)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("token login", "login", login)

	user, _, err := gh.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("token login failed for %s: %w", login, err)
	}

	return &Session{Login: user.GetLogin(), Client: gh}, nil
}

// LoginBasic builds a password-authenticated session, retrying with a
// one-time code from twoFactor while the server keeps demanding one
func (g *GitHub) LoginBasic(ctx context.Context, login, password string, twoFactor TwoFactorFunc) (*Session, error) {
	tr := &basicAuthTransport{
		username: login,
		password: password,
		base:     http.DefaultTransport,
	}
	hc := &http.Client{Transport: tr, Timeout: g.timeout}

	gh, err := g.newClient(hc)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("basic login", "login", login)

	for {
		user, resp, err := gh.Users.Get(ctx, "")
		if err == nil {
			return &Session{Login: user.GetLogin(), Client: gh}, nil
		}

		if resp != nil && otpRequired(resp.Response) && twoFactor != nil {
			if code := twoFactor(); code != "" {
				tr.otp = code
				continue
			}
		}

		return nil, fmt.Errorf("login failed for %s: %w", login, err)
	}
}

// authorizationRequest is the classic OAuth authorizations API payload
type authorizationRequest struct {
	Scopes  []string `json:"scopes"`
	Note    string   `json:"note"`
	NoteURL string   `json:"note_url"`
}

type authorizationResponse struct {
	Token string `json:"token"`
}

// Authorize creates a personal access token via POST /authorizations.
// A 422 response means an authorization with the same note already
// exists and maps to ErrAuthorizationRejected.
func (g *GitHub) Authorize(ctx context.Context, login, password string, scopes []string, note, noteURL string, twoFactor TwoFactorFunc) (string, error) {
	payload, err := json.Marshal(authorizationRequest{
		Scopes:  scopes,
		Note:    note,
		NoteURL: noteURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal authorization request: %w", err)
	}

	url := g.baseURL + "/authorizations"
	hc := &http.Client{Timeout: g.timeout}
	otp := ""

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("failed to create authorization request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/vnd.github+json")
		req.SetBasicAuth(login, password)
		if otp != "" {
			req.Header.Set("X-GitHub-OTP", otp)
		}

		g.logger.Debug("POST", "url", url, "scopes", strings.Join(scopes, ","))

		resp, err := hc.Do(req)
		if err != nil {
			return "", fmt.Errorf("authorization request failed: %w", err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return "", fmt.Errorf("failed to read authorization response: %w", readErr)
		}

		switch {
		case resp.StatusCode == http.StatusCreated:
			var ar authorizationResponse
			if err := json.Unmarshal(body, &ar); err != nil {
				return "", fmt.Errorf("failed to parse authorization response: %w", err)
			}
			if ar.Token == "" {
				return "", fmt.Errorf("authorization response contained no token")
			}
			return ar.Token, nil

		case otpRequired(resp) && twoFactor != nil:
			if code := twoFactor(); code != "" {
				otp = code
				continue
			}
			return "", fmt.Errorf("two-factor code required but none supplied")

		case resp.StatusCode == http.StatusUnprocessableEntity:
			return "", fmt.Errorf("%w: an authorization named %q already exists", ErrAuthorizationRejected, note)

		default:
			return "", fmt.Errorf("authorization failed: server returned status %d", resp.StatusCode)
		}
	}
}

// newClient builds a go-github client, pointing it at an enterprise
// endpoint when the base URL is not the public API
func (g *GitHub) newClient(hc *http.Client) (*github.Client, error) {
	gh := github.NewClient(hc)
	if g.baseURL != "" && g.baseURL != defaultBaseURL {
		var err error
		gh, err = gh.WithEnterpriseURLs(g.baseURL, g.baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API base url %q: %w", g.baseURL, err)
		}
	}
	return gh, nil
}

// otpRequired reports whether the response demands a second factor
func otpRequired(resp *http.Response) bool {
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		return false
	}
	return strings.Contains(resp.Header.Get("X-GitHub-OTP"), "required")
}

// basicAuthTransport adds basic auth and an optional one-time code to
// every request
type basicAuthTransport struct {
	username string
	password string
	otp      string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.SetBasicAuth(t.username, t.password)
	if t.otp != "" {
		r.Header.Set("X-GitHub-OTP", t.otp)
	}
	return t.base.RoundTrip(r)
}
