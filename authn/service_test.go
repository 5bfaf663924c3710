package authn_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mindmate-app/mindmate-client/authn"
	"github.com/mindmate-app/mindmate-client/credentials"
	credfake "github.com/mindmate-app/mindmate-client/credentials/repofake"
	"github.com/mindmate-app/mindmate-client/httpclient"
	"github.com/mindmate-app/mindmate-client/internal/errors"
	"github.com/mindmate-app/mindmate-client/session"
	sessionfake "github.com/mindmate-app/mindmate-client/session/repofake"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures the notification side channel
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func (n *recordingNotifier) lastFailure() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.failures) == 0 {
		return ""
	}
	return n.failures[len(n.failures)-1]
}

type fixture struct {
	service  *authn.Service
	creds    *credfake.FakeCredentialsRepo
	state    *session.State
	notifier *recordingNotifier

	profileFails bool
	logoutCalls  int
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		creds:    credfake.NewFakeCredentialsRepo(),
		notifier: &recordingNotifier{},
	}
	f.state = session.NewState(sessionfake.NewFakeSnapshotRepo())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch {
		case req.Email == "a@b.com" && req.Password == "right":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"access_token": "T1", "refresh_token": "R1", "token_type": "bearer",
			})
		case req.Email == "unverified@b.com":
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Please verify your email first"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
		}
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email == "taken@b.com" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "User created! Please check your email for verification link."})
	})
	mux.HandleFunc("GET /user/me", func(w http.ResponseWriter, r *http.Request) {
		if f.profileFails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.Header.Get("Authorization") != "Bearer T1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "1", "email": "a@b.com", "is_verified": true, "first_name": "Alex",
		})
	})
	mux.HandleFunc("GET /auth/google-login", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"auth_url": "https://accounts.google.com/o/oauth2/v2/auth?client_id=x"})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		f.logoutCalls++
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Logged out successfully"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	api := httpclient.New(server.URL, f.creds)
	f.service = authn.NewService(api, f.creds, f.state, f.notifier)
	return f
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := setupFixture(t)

	err := f.service.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrInvalidCredentials))

	require.Nil(t, f.state.User())
	require.Equal(t, 0, f.creds.Len())
	require.Equal(t, "Login failed. Please check your credentials.", f.notifier.lastFailure())
}

func TestLogin_EmailUnverified(t *testing.T) {
	f := setupFixture(t)

	err := f.service.Login(context.Background(), "unverified@b.com", "right")
	require.True(t, errors.Is(err, errors.ErrEmailUnverified))
	require.Nil(t, f.state.User())
	require.Equal(t, "Please verify your email before logging in.", f.notifier.lastFailure())
}

func TestLogin_Success(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.service.Login(context.Background(), "a@b.com", "right"))

	user := f.state.User()
	require.NotNil(t, user)
	require.Equal(t, session.User{
		ID:           "1",
		Email:        "a@b.com",
		IsVerified:   true,
		FirstName:    "Alex",
		AccessToken:  "T1",
		RefreshToken: "R1",
	}, *user)
	require.Equal(t, credentials.Pair{AccessToken: "T1", RefreshToken: "R1"}, credentials.GetPair(f.creds))
	require.Contains(t, f.notifier.successes, "Login successful!")
}

func TestLogin_ProfileFetchFailureLeavesNoSession(t *testing.T) {
	f := setupFixture(t)
	f.profileFails = true

	err := f.service.Login(context.Background(), "a@b.com", "right")
	require.Error(t, err)

	// No partial user, and the freshly persisted tokens were cleared again
	require.Nil(t, f.state.User())
	require.Equal(t, 0, f.creds.Len())
}

func TestLogin_PersistFailureLeavesNoSession(t *testing.T) {
	f := setupFixture(t)
	f.creds.SetErr = fmt.Errorf("disk full")

	err := f.service.Login(context.Background(), "a@b.com", "right")
	require.ErrorContains(t, err, "persisting token pair")

	require.Nil(t, f.state.User())
	require.Equal(t, 0, f.creds.Len())
	require.Equal(t, "Unexpected error during login. Try again.", f.notifier.lastFailure())
}

func TestGoogleLogin_ConvergesWithLogin(t *testing.T) {
	f := setupFixture(t)

	require.NoError(t, f.service.GoogleLogin(context.Background(), "T1", "R1"))
	user := f.state.User()
	require.NotNil(t, user)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, credentials.Pair{AccessToken: "T1", RefreshToken: "R1"}, credentials.GetPair(f.creds))
}

func TestGoogleLogin_IncompletePairRejected(t *testing.T) {
	f := setupFixture(t)

	err := f.service.GoogleLogin(context.Background(), "T1", "")
	require.True(t, errors.Is(err, errors.ErrInternal))
	require.Nil(t, f.state.User())
	require.Equal(t, 0, f.creds.Len())
}

func TestSignup(t *testing.T) {
	f := setupFixture(t)

	t.Run("success does not log in", func(t *testing.T) {
		require.NoError(t, f.service.Signup(context.Background(), "new@b.com", "Str0ng!pass", "Alex"))
		require.Nil(t, f.state.User())
		require.Equal(t, 0, f.creds.Len())
	})

	t.Run("email already registered", func(t *testing.T) {
		err := f.service.Signup(context.Background(), "taken@b.com", "Str0ng!pass", "Alex")
		require.True(t, errors.Is(err, errors.ErrEmailAlreadyRegistered))
	})
}

func TestSocialLogin(t *testing.T) {
	f := setupFixture(t)

	t.Run("google returns the authorization URL", func(t *testing.T) {
		url, err := f.service.SocialLogin(context.Background(), authn.ProviderGoogle)
		require.NoError(t, err)
		require.Contains(t, url, "accounts.google.com")
	})

	t.Run("other providers are unsupported", func(t *testing.T) {
		_, err := f.service.SocialLogin(context.Background(), "facebook")
		require.True(t, errors.Is(err, errors.ErrUnsupportedProvider))
	})
}

func TestLogout_Idempotent(t *testing.T) {
	f := setupFixture(t)
	require.NoError(t, f.service.Login(context.Background(), "a@b.com", "right"))

	require.NoError(t, f.service.Logout(context.Background()))
	require.Nil(t, f.state.User())
	require.Equal(t, 0, f.creds.Len())
	require.Equal(t, 1, f.logoutCalls) // refresh token was revoked server-side

	// Logging out again is a no-op on the session and skips the revoke call
	require.NoError(t, f.service.Logout(context.Background()))
	require.Nil(t, f.state.User())
	require.Equal(t, 0, f.creds.Len())
	require.Equal(t, 1, f.logoutCalls)
}

func TestRestore(t *testing.T) {
	t.Run("snapshot with tokens restores the session", func(t *testing.T) {
		f := setupFixture(t)
		require.NoError(t, f.service.Login(context.Background(), "a@b.com", "right"))

		// Simulate a restart: fresh state over the same snapshot repo
		require.NoError(t, f.service.Restore(context.Background()))
		require.NotNil(t, f.state.User())
	})

	t.Run("snapshot without tokens forces logout", func(t *testing.T) {
		f := setupFixture(t)
		require.NoError(t, f.service.Login(context.Background(), "a@b.com", "right"))
		require.NoError(t, f.creds.Clear())

		require.NoError(t, f.service.Restore(context.Background()))
		require.Nil(t, f.state.User())
		require.Equal(t, 0, f.creds.Len())
	})
}
