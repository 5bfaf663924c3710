package session_test

import (
	"testing"

	"github.com/mindmate-app/mindmate-client/session"
	"github.com/mindmate-app/mindmate-client/session/repofake"
	"github.com/stretchr/testify/require"
)

func TestState_SetAndClear(t *testing.T) {
	snapshots := repofake.NewFakeSnapshotRepo()
	state := session.NewState(snapshots)

	require.Nil(t, state.User())
	require.False(t, state.SignedIn())

	u := session.User{ID: "1", Email: "a@b.com", FirstName: "Alex", AccessToken: "T1", RefreshToken: "R1"}
	require.NoError(t, state.SetUser(u))
	require.True(t, state.SignedIn())

	got := state.User()
	require.NotNil(t, got)
	require.Equal(t, "a@b.com", got.Email)

	// The returned user is a copy; mutating it does not touch the state
	got.Email = "tampered"
	require.Equal(t, "a@b.com", state.User().Email)

	require.NoError(t, state.Clear())
	require.Nil(t, state.User())

	// Snapshot was removed too
	saved, err := snapshots.Load()
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestState_SnapshotRestore(t *testing.T) {
	snapshots := repofake.NewFakeSnapshotRepo()
	state := session.NewState(snapshots)
	require.NoError(t, state.SetUser(session.User{ID: "1", Email: "a@b.com"}))

	// A fresh State over the same repo restores the persisted user
	restarted := session.NewState(snapshots)
	u, err := restarted.Snapshot()
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "a@b.com", u.Email)
	require.True(t, restarted.SignedIn())
}

func TestFileSnapshotRepo_RoundTrip(t *testing.T) {
	repo, err := session.NewFileSnapshotRepo(t.TempDir())
	require.NoError(t, err)

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	require.NoError(t, repo.Save(&session.User{ID: "1", Email: "a@b.com", IsVerified: true}))
	loaded, err = repo.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, "a@b.com", loaded.Email)
	require.True(t, loaded.IsVerified)

	require.NoError(t, repo.Delete())
	loaded, err = repo.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	require.NoError(t, repo.Delete()) // idempotent
}
