// Package auth stores OAuth2 grants per account and hands out short-lived access tokens.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"github.com/ccfrost/climbsync/internal/config"
	"github.com/ccfrost/climbsync/internal/lib"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const tokenDirName = "tokens"

// grant is the on-disk form of a connected account.
type grant struct {
	Account string        `json:"account"`
	Scopes  []string      `json:"scopes"`
	Token   *oauth2.Token `json:"token"`
}

// Store implements lib.TokenProvider on top of per-account token files.
type Store struct {
	Dir   string
	OAuth *oauth2.Config

	// HTTPClient, if set, is used for token endpoint calls.
	HTTPClient *http.Client
}

var _ lib.TokenProvider = (*Store)(nil)

// NewStore returns a Store keeping grants under the cache dir of cfg and
// requesting scopes when an account is connected.
func NewStore(cfg config.ClimbsyncConfig, scopes ...string) *Store {
	return &Store{
		Dir: filepath.Join(cfg.CacheDir, tokenDirName),
		OAuth: &oauth2.Config{
			ClientID:     cfg.Google.ClientId,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURI,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *Store) context(ctx context.Context) context.Context {
	if s.HTTPClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, s.HTTPClient)
}

func (s *Store) path(account string) string {
	return filepath.Join(s.Dir, url.PathEscape(account)+".json")
}

func (s *Store) load(account string) (*grant, error) {
	f, err := os.Open(s.path(account))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: account %s is not connected", lib.ErrAuthFailed, account)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer f.Close()

	g := &grant{}
	if err := json.NewDecoder(f).Decode(g); err != nil || g.Token == nil {
		return nil, fmt.Errorf("%w: token file for %s is unreadable, reconnect the account", lib.ErrAuthFailed, account)
	}
	return g, nil
}

func (s *Store) save(g *grant) error {
	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create token dir %s: %w", s.Dir, err)
	}
	f, err := os.OpenFile(s.path(g.Account), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(g)
}

// tokenSource returns a fresh token source for account that is allowed to use scope.
func (s *Store) tokenSource(ctx context.Context, account, scope string) (oauth2.TokenSource, *grant, error) {
	g, err := s.load(account)
	if err != nil {
		return nil, nil, err
	}
	if !slices.Contains(g.Scopes, scope) {
		return nil, nil, fmt.Errorf("%w: account %s has not granted %s", lib.ErrAuthFailed, account, scope)
	}
	return s.OAuth.TokenSource(s.context(ctx), g.Token), g, nil
}

// Token returns a valid access token, refreshing it through the token endpoint when needed.
// Nothing is cached in memory between calls.
func (s *Store) Token(ctx context.Context, account, scope string) (string, error) {
	ts, g, err := s.tokenSource(ctx, account, scope)
	if err != nil {
		return "", err
	}
	tok, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %w", lib.ErrAuthFailed, err)
	}
	if tok.RefreshToken != "" && tok.RefreshToken != g.Token.RefreshToken {
		g.Token = tok
		if err := s.save(g); err != nil {
			lib.Logger().Warn("Failed to persist rotated refresh token",
				slog.String("account", account),
				slog.String("error", err.Error()))
		}
	}
	return tok.AccessToken, nil
}

// Client returns an http.Client that authorizes requests as account.
func (s *Store) Client(ctx context.Context, account, scope string) (*http.Client, error) {
	ts, _, err := s.tokenSource(ctx, account, scope)
	if err != nil {
		return nil, err
	}
	// Fail here rather than on the first request.
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", lib.ErrAuthFailed, err)
	}
	return oauth2.NewClient(s.context(ctx), ts), nil
}

// Connected reports whether account has a stored grant.
func (s *Store) Connected(account string) bool {
	_, err := os.Stat(s.path(account))
	return err == nil
}

// Save stores token as the grant for account.
func (s *Store) Save(account string, token *oauth2.Token) error {
	return s.save(&grant{Account: account, Scopes: s.OAuth.Scopes, Token: token})
}

// Disconnect deletes the grant for account. Disconnecting an unknown account is not an error.
func (s *Store) Disconnect(account string) error {
	if err := os.Remove(s.path(account)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token for %s: %w", account, err)
	}
	return nil
}
