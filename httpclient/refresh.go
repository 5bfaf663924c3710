package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mindmate-app/mindmate-client/credentials"
	"github.com/mindmate-app/mindmate-client/internal/errors"
	"github.com/rs/zerolog/log"
)

const refreshTimeout = 15 * time.Second

// tokenResponse is the backend's token payload, returned from login and
// refresh. The refresh endpoint rotates the refresh token, so both fields can
// be present.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// refreshGroup exchanges the stored refresh token for a new access token,
// sharing a single in-flight exchange across concurrent 401s. The first
// failing request starts the refresh; requests failing while it runs wait for
// the same outcome instead of consuming the rotated refresh token themselves.
type refreshGroup struct {
	refreshURL string
	creds      credentials.Repo
	client     *http.Client // plain client; the refresh call itself bypasses the interceptor
	onExpired  func()

	mu      sync.Mutex
	pending *refreshCall
}

type refreshCall struct {
	done  chan struct{}
	token string
	err   error
}

func newRefreshGroup(baseURL string, creds credentials.Repo, base http.RoundTripper) *refreshGroup {
	return &refreshGroup{
		refreshURL: baseURL + "/auth/refresh",
		creds:      creds,
		client:     &http.Client{Transport: base},
	}
}

// Do returns a fresh access token, joining the in-flight refresh if one is
// already running. On failure the session-expired handler fires once, and
// every waiter receives the same error.
func (g *refreshGroup) Do(ctx context.Context) (string, error) {
	g.mu.Lock()
	if call := g.pending; call != nil {
		g.mu.Unlock()
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	g.pending = call
	g.mu.Unlock()

	call.token, call.err = g.exchange(ctx)
	if call.err != nil && g.onExpired != nil {
		g.onExpired()
	}

	g.mu.Lock()
	g.pending = nil
	g.mu.Unlock()
	close(call.done)

	return call.token, call.err
}

func (g *refreshGroup) exchange(ctx context.Context) (string, error) {
	refreshToken, ok := g.creds.Get(credentials.KeyRefreshToken)
	if !ok || refreshToken == "" {
		return "", errors.Wrapf(errors.ErrSessionExpired, "no refresh token stored")
	}

	// Detached from the failing request's lifetime: one canceled caller must
	// not poison the refresh every other waiter depends on.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return "", fmt.Errorf("encoding refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(rctx, http.MethodPost, g.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling refresh endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := errorFromResponse(resp)
		log.Warn().Int("status", apiErr.Status).Str("detail", apiErr.Detail).Msg("Token refresh rejected")
		return "", errors.Wrapf(errors.ErrSessionExpired, "refresh rejected with status %d", apiErr.Status)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	if tokens.AccessToken == "" {
		return "", errors.Wrapf(errors.ErrSessionExpired, "refresh response missing access token")
	}

	if err := g.creds.Set(credentials.KeyAccessToken, tokens.AccessToken); err != nil {
		return "", fmt.Errorf("persisting refreshed access token: %w", err)
	}
	// The backend rotates the refresh token; keep the new one when present or
	// the next refresh would fail against the consumed old token.
	if tokens.RefreshToken != "" {
		if err := g.creds.Set(credentials.KeyRefreshToken, tokens.RefreshToken); err != nil {
			return "", fmt.Errorf("persisting rotated refresh token: %w", err)
		}
	}

	return tokens.AccessToken, nil
}
