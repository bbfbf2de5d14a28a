package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"
)

// openBrowser is replaced in tests.
var openBrowser = openSystemBrowser

// Connect runs the browser consent flow and stores the resulting grant for account.
func (s *Store) Connect(ctx context.Context, account string) error {
	tok, err := s.tokenFromWeb(ctx)
	if err != nil {
		return err
	}
	if err := s.Save(account, tok); err != nil {
		return err
	}
	fmt.Printf("Account %s connected; token saved to %s\n", account, s.path(account))
	return nil
}

// tokenFromWeb guides the user through the web-based OAuth2 flow via a local server.
func (s *Store) tokenFromWeb(ctx context.Context) (*oauth2.Token, error) {
	// Parse the redirect URL to determine the port to listen on.
	// We expect something like "http://localhost:8080" or "http://127.0.0.1:0".
	u, err := url.Parse(s.OAuth.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("bad redirect URL: %w", err)
	}

	l, err := net.Listen("tcp", u.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to start local server for auth: %w", err)
	}
	defer l.Close()

	// Port 0 picks a free port; the redirect must name the real one.
	conf := *s.OAuth
	u.Host = net.JoinHostPort(u.Hostname(), fmt.Sprint(l.Addr().(*net.TCPAddr).Port))
	conf.RedirectURL = u.String()

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if e := q.Get("error"); e != "" {
			http.Error(w, "Authorization denied", http.StatusForbidden)
			select {
			case errCh <- fmt.Errorf("authorization denied: %s", e):
			default:
			}
			return
		}
		code := q.Get("code")
		if code == "" || q.Get("state") != state {
			http.Error(w, "Code not found in response", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><h1>Climbsync Authentication Successful</h1><p>You can close this window now and return to the terminal.</p></body></html>`)

		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Handler: handler}
	defer server.Close()
	go func() {
		if err := server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Printf("Opening browser to complete authentication:\n%s\n", authURL)
	go openBrowser(authURL)
	fmt.Println("Waiting for authentication callback...")

	select {
	case code := <-codeCh:
		tok, err := conf.Exchange(s.context(ctx), code)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from web exchange: %w", err)
		}
		if tok.RefreshToken == "" {
			return nil, fmt.Errorf("authorization server returned no refresh token")
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// openSystemBrowser attempts to open the specified URL in the default browser.
func openSystemBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}
	if err != nil {
		fmt.Printf("Could not open browser automatically: %v\nPlease open the URL manually.\n", err)
	}
}
