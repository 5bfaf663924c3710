package credentials_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindmate-app/mindmate-client/credentials"
	"github.com/stretchr/testify/require"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574" // 32 bytes, hex

func TestFileRepo_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	repo, err := credentials.NewFileRepo(dir, "")
	require.NoError(t, err)

	require.NoError(t, repo.Set(credentials.KeyAccessToken, "T1"))
	require.NoError(t, repo.Set(credentials.KeyRefreshToken, "R1"))

	v, ok := repo.Get(credentials.KeyAccessToken)
	require.True(t, ok)
	require.Equal(t, "T1", v)

	// A new instance over the same folder sees the persisted tokens
	reopened, err := credentials.NewFileRepo(dir, "")
	require.NoError(t, err)
	require.Equal(t, credentials.Pair{AccessToken: "T1", RefreshToken: "R1"}, credentials.GetPair(reopened))
}

func TestFileRepo_Clear(t *testing.T) {
	dir := t.TempDir()

	repo, err := credentials.NewFileRepo(dir, "")
	require.NoError(t, err)
	require.NoError(t, credentials.SetPair(repo, credentials.Pair{AccessToken: "T1", RefreshToken: "R1"}))

	require.NoError(t, repo.Clear())

	_, ok := repo.Get(credentials.KeyAccessToken)
	require.False(t, ok)
	_, ok = repo.Get(credentials.KeyRefreshToken)
	require.False(t, ok)

	// Clearing an already-empty store is a no-op
	require.NoError(t, repo.Clear())
}

func TestFileRepo_Encrypted(t *testing.T) {
	dir := t.TempDir()

	repo, err := credentials.NewFileRepo(dir, testKey)
	require.NoError(t, err)
	require.NoError(t, credentials.SetPair(repo, credentials.Pair{AccessToken: "T1", RefreshToken: "R1"}))

	// Tokens must not appear in plaintext on disk
	raw, err := os.ReadFile(filepath.Join(dir, "credentials.json"))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "T1"))
	require.False(t, strings.Contains(string(raw), "R1"))

	reopened, err := credentials.NewFileRepo(dir, testKey)
	require.NoError(t, err)
	require.Equal(t, credentials.Pair{AccessToken: "T1", RefreshToken: "R1"}, credentials.GetPair(reopened))
}

func TestFileRepo_BadKeyRejected(t *testing.T) {
	_, err := credentials.NewFileRepo(t.TempDir(), "not-hex")
	require.Error(t, err)

	_, err = credentials.NewFileRepo(t.TempDir(), "abcd") // too short
	require.Error(t, err)
}

func TestFileRepo_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials.json"), []byte("{garbage"), 0o600))

	repo, err := credentials.NewFileRepo(dir, "")
	require.NoError(t, err)
	_, ok := repo.Get(credentials.KeyAccessToken)
	require.False(t, ok)
}
