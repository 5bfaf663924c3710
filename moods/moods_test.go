package moods_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mindmate-app/mindmate-client/credentials/repofake"
	"github.com/mindmate-app/mindmate-client/httpclient"
	"github.com/mindmate-app/mindmate-client/moods"
	"github.com/stretchr/testify/require"
)

func setupMoodService(t *testing.T, hasLogs bool) *moods.Service {
	t.Helper()

	logID := uuid.New()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /mood/", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Mood int `json:"mood"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]any{
			"id": logID, "mood": payload.Mood, "created_at": time.Now().UTC(),
		})
	})
	mux.HandleFunc("GET /mood/latest", func(w http.ResponseWriter, r *http.Request) {
		if !hasLogs {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "No mood logs found"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": logID, "mood": 4, "created_at": time.Now().UTC(),
		})
	})

	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	api := httpclient.New(backend.URL, repofake.NewFakeCredentialsRepo())
	return moods.NewService(api)
}

func TestCreate_RejectsOutOfRangeMood(t *testing.T) {
	svc := setupMoodService(t, false)

	for _, mood := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), mood)
		require.Error(t, err)
	}

	logEntry, err := svc.Create(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 3, logEntry.Mood)
	require.NotEqual(t, uuid.Nil, logEntry.ID)
}

func TestLatest_NilWhenNoLogs(t *testing.T) {
	svc := setupMoodService(t, false)

	logEntry, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Nil(t, logEntry)
}

func TestLatest_ReturnsMostRecent(t *testing.T) {
	svc := setupMoodService(t, true)

	logEntry, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, logEntry)
	require.Equal(t, 4, logEntry.Mood)
}
