// Package callback handles the OAuth redirect-back step: it exchanges the
// one-time authorization code with the backend, and routes the outcome into
// either normal session establishment or the account-linking flow.
package callback

import (
	"context"
	"fmt"
	"sync"

	"github.com/mindmate-app/mindmate-client/authn"
	"github.com/mindmate-app/mindmate-client/credentials"
	"github.com/mindmate-app/mindmate-client/httpclient"
	"github.com/mindmate-app/mindmate-client/internal/errors"
	"github.com/rs/zerolog/log"
)

// Outcome tags the three possible results of a code exchange.
type Outcome int

const (
	// OutcomeSuccess means the backend issued a full token pair.
	OutcomeSuccess Outcome = iota
	// OutcomeRequiresLinking means an account with the same email exists but
	// is not linked to Google; the user must confirm before tokens are issued.
	OutcomeRequiresLinking
	// OutcomeFailure means the exchange was rejected.
	OutcomeFailure
)

// ExchangeResult is the decoded outcome of exchanging an authorization code.
type ExchangeResult struct {
	Outcome Outcome

	// Success fields
	AccessToken  string
	RefreshToken string

	// Linking fields: the email that collided and the partial (Google) access
	// token the linking endpoint needs to verify the identity.
	Email              string
	PartialAccessToken string

	// Detail carries the backend's message for linking prompts and failures.
	Detail string
}

// Prompter asks the user to confirm linking their Google identity to an
// existing account. Frontends decide how: a confirm dialog, a form, a TTY
// prompt.
type Prompter interface {
	ConfirmLinking(email, detail string) bool
}

// Finalizer turns an exchanged token pair into an established session.
// Implemented by the auth facade.
type Finalizer interface {
	GoogleLogin(ctx context.Context, accessToken, refreshToken string) error
}

// Handler performs the callback exchange. Authorization codes are single-use
// upstream, so each code is exchanged at most once per process no matter how
// often the callback route fires.
type Handler struct {
	api      *httpclient.Client
	creds    credentials.Repo
	sessions Finalizer
	notifier authn.Notifier

	mu       sync.Mutex
	consumed map[string]bool
}

// NewHandler creates a callback handler.
func NewHandler(api *httpclient.Client, creds credentials.Repo, sessions Finalizer, notifier authn.Notifier) *Handler {
	if notifier == nil {
		notifier = authn.LogNotifier{}
	}
	return &Handler{
		api:      api,
		creds:    creds,
		sessions: sessions,
		notifier: notifier,
		consumed: make(map[string]bool),
	}
}

// callbackResponse is the backend's callback payload. Exactly one of the
// three shapes is populated: token pair, linking requirement, or bare detail.
type callbackResponse struct {
	RequiresLinking bool   `json:"requires_linking"`
	Detail          string `json:"detail"`
	Email           string `json:"email"`
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
}

// Exchange trades the authorization code for tokens or a linking requirement.
// The second invocation for the same code returns ErrOAuthExchangeFailed
// without touching the backend: the first invocation owns the outcome.
func (h *Handler) Exchange(ctx context.Context, code string) (*ExchangeResult, error) {
	if code == "" {
		h.notifier.Error("Authorization failed.")
		return nil, errors.ErrMissingAuthCode
	}

	h.mu.Lock()
	if h.consumed[code] {
		h.mu.Unlock()
		return nil, errors.Wrapf(errors.ErrOAuthExchangeFailed, "authorization code already exchanged")
	}
	h.consumed[code] = true
	h.mu.Unlock()

	var resp callbackResponse
	if err := h.api.Get(ctx, "/auth/google/callback?code="+code, &resp); err != nil {
		detail := httpclient.Detail(err)
		if detail == "" {
			detail = "Login failed"
		}
		h.notifier.Error(detail)
		return nil, errors.Wrapf(errors.ErrOAuthExchangeFailed, "%s", detail)
	}

	switch {
	case resp.RequiresLinking:
		return &ExchangeResult{
			Outcome:            OutcomeRequiresLinking,
			Email:              resp.Email,
			PartialAccessToken: resp.AccessToken,
			Detail:             resp.Detail,
		}, nil
	case resp.AccessToken != "" && resp.RefreshToken != "":
		return &ExchangeResult{
			Outcome:      OutcomeSuccess,
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
		}, nil
	default:
		detail := resp.Detail
		if detail == "" {
			detail = "Login failed"
		}
		h.notifier.Error(detail)
		return &ExchangeResult{Outcome: OutcomeFailure, Detail: detail},
			errors.Wrapf(errors.ErrOAuthExchangeFailed, "%s", detail)
	}
}

// Link confirms account linking with the backend and persists the returned
// token pair directly to the credential store. The session itself stays
// unestablished until the user signs in through the restored credentials.
func (h *Handler) Link(ctx context.Context, email, partialAccessToken string) error {
	var resp callbackResponse
	err := h.api.Post(ctx, "/auth/link-google", map[string]string{
		"email":        email,
		"access_token": partialAccessToken,
	}, &resp)
	if err != nil || resp.AccessToken == "" || resp.RefreshToken == "" {
		detail := httpclient.Detail(err)
		if detail == "" {
			detail = "Failed to link account."
		}
		h.notifier.Error(detail)
		return errors.Wrapf(errors.ErrLinkingFailed, "%s", detail)
	}

	if err := credentials.SetPair(h.creds, credentials.Pair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}); err != nil {
		return fmt.Errorf("persisting linked token pair: %w", err)
	}
	h.notifier.Success("Google account linked successfully.")
	return nil
}

// Handle runs the full callback flow for frontends with a synchronous
// prompter: exchange the code, then either finalise the session, walk the
// linking branch, or surface the failure.
func (h *Handler) Handle(ctx context.Context, code string, prompt Prompter) error {
	result, err := h.Exchange(ctx, code)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case OutcomeSuccess:
		return h.sessions.GoogleLogin(ctx, result.AccessToken, result.RefreshToken)
	case OutcomeRequiresLinking:
		if prompt == nil || !prompt.ConfirmLinking(result.Email, result.Detail) {
			h.notifier.Error("Google account not linked.")
			return errors.Wrapf(errors.ErrLinkingDeclined, "user declined to link %s", result.Email)
		}
		return h.Link(ctx, result.Email, result.PartialAccessToken)
	default:
		log.Warn().Str("detail", result.Detail).Msg("OAuth callback exchange failed")
		return errors.Wrapf(errors.ErrOAuthExchangeFailed, "%s", result.Detail)
	}
}
