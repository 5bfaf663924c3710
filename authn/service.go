// Package authn is the session facade: login, signup, social login, OAuth
// finalisation and logout. Every operation either mutates the session state
// and the credential store together or leaves both untouched; a half
// established session is the one state this package exists to prevent.
package authn

import (
	"context"
	"fmt"

	"github.com/mindmate-app/mindmate-client/credentials"
	"github.com/mindmate-app/mindmate-client/httpclient"
	"github.com/mindmate-app/mindmate-client/internal/errors"
	"github.com/mindmate-app/mindmate-client/session"
	"github.com/rs/zerolog/log"
)

// ProviderGoogle is the only identity provider wired to a real backend flow.
const ProviderGoogle = "google"

// Service orchestrates the credential store, the HTTP client and the session
// state. It is the only writer to both stores apart from the account-linking
// path.
type Service struct {
	api      *httpclient.Client
	creds    credentials.Repo
	state    *session.State
	notifier Notifier
}

// NewService wires the facade and registers its forced-logout handler with
// the HTTP client, so a failed token refresh anywhere in the pipeline resets
// the session.
func NewService(api *httpclient.Client, creds credentials.Repo, state *session.State, notifier Notifier) *Service {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	s := &Service{api: api, creds: creds, state: state, notifier: notifier}
	api.OnSessionExpired(s.expireSession)
	return s
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type authURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// Login posts credentials and, on success, persists the token pair and
// fetches the profile to establish the session.
func (s *Service) Login(ctx context.Context, email, password string) error {
	var tokens tokenPairResponse
	err := s.api.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &tokens)
	if err != nil {
		err = classifyLoginError(err)
		if errors.Is(err, errors.ErrEmailUnverified) {
			s.notifier.Error("Please verify your email before logging in.")
		} else {
			s.notifier.Error("Login failed. Please check your credentials.")
		}
		return err
	}
	return s.establishSession(ctx, credentials.Pair{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Signup registers a new account. The user is NOT logged in afterwards; the
// backend requires email verification first.
func (s *Service) Signup(ctx context.Context, email, password, firstName string) error {
	err := s.api.Post(ctx, "/auth/register", registerRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
	}, nil)
	if err != nil {
		err = classifySignupError(err)
		if errors.Is(err, errors.ErrEmailAlreadyRegistered) {
			s.notifier.Error("This email is already registered. Please login or use another email.")
		} else {
			s.notifier.Error("Registration failed. Please try again.")
		}
		return err
	}
	s.notifier.Success("Registration successful! Please check your email to verify your account.")
	return nil
}

// SocialLogin asks the backend for the provider's authorization URL. The
// caller performs the actual redirect; control only returns to this client
// through the OAuth callback route. Only Google is wired to a real flow.
func (s *Service) SocialLogin(ctx context.Context, provider string) (string, error) {
	if provider != ProviderGoogle {
		return "", errors.Wrapf(errors.ErrUnsupportedProvider, "provider %q", provider)
	}
	var out authURLResponse
	if err := s.api.Get(ctx, "/auth/google-login", &out); err != nil {
		log.Err(err).Msg("Failed to get auth URL")
		return "", fmt.Errorf("requesting authorization URL: %w", err)
	}
	return out.AuthURL, nil
}

// GoogleLogin finalises an OAuth login with tokens the callback exchange
// already obtained. Convergence point with Login's success path.
func (s *Service) GoogleLogin(ctx context.Context, accessToken, refreshToken string) error {
	return s.establishSession(ctx, credentials.Pair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout revokes the refresh token best-effort, clears both stores and
// reports the result. Safe to call when already signed out.
func (s *Service) Logout(ctx context.Context) error {
	if refresh, ok := s.creds.Get(credentials.KeyRefreshToken); ok && refresh != "" {
		// Best effort: local logout completes even if the backend is down.
		if err := s.api.Post(ctx, "/auth/logout", map[string]string{"refresh_token": refresh}, nil); err != nil {
			log.Warn().Err(err).Msg("Server-side token revocation failed")
		}
	}

	if err := s.creds.Clear(); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	if err := s.state.Clear(); err != nil {
		return fmt.Errorf("clearing session state: %w", err)
	}
	s.notifier.Success("Logged out successfully.")
	return nil
}

// Restore rebuilds the session from the persisted snapshot at startup. A
// snapshot without tokens in the credential store is invalid and forces a
// logout rather than leaving the two stores diverged.
func (s *Service) Restore(ctx context.Context) error {
	user, err := s.state.Snapshot()
	if err != nil {
		return fmt.Errorf("loading session snapshot: %w", err)
	}
	if user == nil {
		return nil
	}
	if access, ok := s.creds.Get(credentials.KeyAccessToken); !ok || access == "" {
		log.Warn().Str("email", user.Email).Msg("Session snapshot without stored tokens, forcing logout")
		if err := s.state.Clear(); err != nil {
			return fmt.Errorf("clearing stale session: %w", err)
		}
		return s.creds.Clear()
	}
	return nil
}

// establishSession persists the token pair, then fetches the profile with the
// now-attached access token and merges both into the session state. If the
// profile fetch fails the freshly persisted tokens are cleared again: no
// partial user, no orphaned tokens.
func (s *Service) establishSession(ctx context.Context, pair credentials.Pair) error {
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		s.notifier.Error("Unexpected error during login. Try again.")
		return errors.Wrapf(errors.ErrInternal, "backend returned an incomplete token pair")
	}

	if err := credentials.SetPair(s.creds, pair); err != nil {
		s.notifier.Error("Unexpected error during login. Try again.")
		return fmt.Errorf("persisting token pair: %w", err)
	}

	var profile struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		IsVerified bool   `json:"is_verified"`
		FirstName  string `json:"first_name"`
	}
	if err := s.api.Get(ctx, "/user/me", &profile); err != nil {
		if clearErr := s.creds.Clear(); clearErr != nil {
			log.Err(clearErr).Msg("Failed to clear credentials after profile fetch failure")
		}
		s.notifier.Error("Login failed. Please check your credentials.")
		return fmt.Errorf("fetching profile: %w", err)
	}

	if err := s.state.SetUser(session.User{
		ID:           profile.ID,
		Email:        profile.Email,
		IsVerified:   profile.IsVerified,
		FirstName:    profile.FirstName,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	s.notifier.Success("Login successful!")
	return nil
}

// expireSession is invoked by the HTTP client when a token refresh fails.
func (s *Service) expireSession() {
	if err := s.creds.Clear(); err != nil {
		log.Err(err).Msg("Failed to clear credentials on session expiry")
	}
	if err := s.state.Clear(); err != nil {
		log.Err(err).Msg("Failed to clear session state on session expiry")
	}
	s.notifier.Error("Session expired. Please log in again.")
}
