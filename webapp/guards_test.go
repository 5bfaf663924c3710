package webapp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mindmate-app/mindmate-client/session"
	"github.com/mindmate-app/mindmate-client/session/repofake"
	"github.com/mindmate-app/mindmate-client/webapp"
	"github.com/stretchr/testify/require"
)

type testConfig struct{}

func (testConfig) GetPort() string           { return "5173" }
func (testConfig) GetAppName() string        { return "MindMate" }
func (testConfig) GetAPIBaseURL() string     { return "http://localhost:8000" }
func (testConfig) GetCallbackURL() string    { return "http://localhost:5173/callback" }
func (testConfig) GetEnv() string            { return "TEST" }
func (testConfig) GetDataFolder() string     { return "" }
func (testConfig) GetCredentialsKey() string { return "" }

func setupGuardServer(t *testing.T) (*webapp.Server, *session.State) {
	t.Helper()
	state := session.NewState(repofake.NewFakeSnapshotRepo())
	srv := webapp.New(testConfig{}, state, nil, nil, webapp.NewNoticeBoard(), webapp.Services{})
	return srv, state
}

func signIn(t *testing.T, state *session.State) {
	t.Helper()
	require.NoError(t, state.SetUser(session.User{
		ID: "u-1", Email: "pat@example.com", AccessToken: "T1", RefreshToken: "R1",
	}))
}

func TestPublicRoute(t *testing.T) {
	srv, state := setupGuardServer(t)

	var reached bool
	guarded := srv.PublicRoute(func(w http.ResponseWriter, r *http.Request) { reached = true })

	// Anonymous visitors pass through.
	rec := httptest.NewRecorder()
	guarded(rec, httptest.NewRequest(http.MethodGet, webapp.RouteLogin, nil))
	require.True(t, reached)
	require.Equal(t, http.StatusOK, rec.Code)

	// Signed-in users are bounced to the dashboard.
	signIn(t, state)
	reached = false
	rec = httptest.NewRecorder()
	guarded(rec, httptest.NewRequest(http.MethodGet, webapp.RouteLogin, nil))
	require.False(t, reached)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, webapp.RouteDashboard, rec.Header().Get("Location"))
}

func TestProtectedRoute(t *testing.T) {
	srv, state := setupGuardServer(t)

	var reached bool
	guarded := srv.ProtectedRoute(func(w http.ResponseWriter, r *http.Request) { reached = true })

	// Anonymous visitors are bounced to the login page.
	rec := httptest.NewRecorder()
	guarded(rec, httptest.NewRequest(http.MethodGet, webapp.RouteJournal, nil))
	require.False(t, reached)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, webapp.RouteLogin, rec.Header().Get("Location"))

	// Signed-in users pass through.
	signIn(t, state)
	rec = httptest.NewRecorder()
	guarded(rec, httptest.NewRequest(http.MethodGet, webapp.RouteJournal, nil))
	require.True(t, reached)
	require.Equal(t, http.StatusOK, rec.Code)
}

// The guard decision changes as soon as the session state does, with no
// backend involved at all.
func TestGuardsFollowSessionState(t *testing.T) {
	srv, state := setupGuardServer(t)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get(webapp.RouteDashboard)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, webapp.RouteLogin, rec.Header().Get("Location"))

	rec = get(webapp.RouteLogin)
	require.Equal(t, http.StatusOK, rec.Code)

	signIn(t, state)

	rec = get(webapp.RouteLogin)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, webapp.RouteDashboard, rec.Header().Get("Location"))

	require.NoError(t, state.Clear())
	rec = get(webapp.RouteProfile)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, webapp.RouteLogin, rec.Header().Get("Location"))
}
