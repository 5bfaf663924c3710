package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mindmate-app/mindmate-client/credentials"
)

const loginPath = "/auth/login"

// authTransport is the interceptor pipeline. Per request:
//
//   - request phase: attach the stored access token as a bearer credential
//   - response phase: on a 401 (except for the login endpoint) run one
//     refresh-and-retry cycle, then return whatever the retry produced
//
// The retry is issued inline exactly once, so a second 401 on the retried
// request can never trigger another refresh.
type authTransport struct {
	base    http.RoundTripper
	creds   credentials.Repo
	refresh *refreshGroup
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(t.authorize(req, ""))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || isLoginRequest(req) {
		return resp, nil
	}

	drain(resp)

	token, err := t.refresh.Do(req.Context())
	if err != nil {
		// Refresh failed: the session-expired handler has already run; the
		// original request is not retried.
		return nil, err
	}

	retry, err := rewind(req)
	if err != nil {
		return nil, err
	}
	return t.base.RoundTrip(t.authorize(retry, token))
}

// authorize returns a clone of req carrying the bearer credential. With an
// empty token the stored access token is used; requests stay untouched when
// no token exists at all.
func (t *authTransport) authorize(req *http.Request, token string) *http.Request {
	if token == "" {
		stored, ok := t.creds.Get(credentials.KeyAccessToken)
		if !ok || stored == "" {
			return req
		}
		token = stored
	}
	authorized := req.Clone(req.Context())
	authorized.Header.Set("Authorization", "Bearer "+token)
	return authorized
}

// rewind clones req with a replayable copy of its body for the retry.
func rewind(req *http.Request) (*http.Request, error) {
	retry := req.Clone(req.Context())
	if req.GetBody == nil {
		return retry, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewinding request body for retry: %w", err)
	}
	retry.Body = body
	return retry, nil
}

// The login endpoint is exempt from refresh-and-retry: a 401 there means bad
// credentials, not an expired token.
func isLoginRequest(req *http.Request) bool {
	return strings.HasSuffix(req.URL.Path, loginPath)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	_ = resp.Body.Close()
}
