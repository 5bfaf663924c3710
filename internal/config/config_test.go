package config_test

import (
	"testing"

	"github.com/mindmate-app/mindmate-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestGetPort(t *testing.T) {
	c := config.New()

	t.Setenv("PORT", "")
	require.Equal(t, ":5173", c.GetPort())

	t.Setenv("PORT", "8080")
	require.Equal(t, ":8080", c.GetPort())

	t.Setenv("PORT", ":9090")
	require.Equal(t, ":9090", c.GetPort())
}

func TestGetCallbackURL(t *testing.T) {
	c := config.New()

	t.Setenv("PORT", "")
	t.Setenv("CALLBACK_URL", "")

	// Default derives from the listen port and ends at the callback route.
	require.Equal(t, "http://localhost:5173/callback", c.GetCallbackURL())

	t.Setenv("PORT", "8080")
	require.Equal(t, "http://localhost:8080/callback", c.GetCallbackURL())

	t.Setenv("CALLBACK_URL", "https://mindmate.example.com/callback")
	require.Equal(t, "https://mindmate.example.com/callback", c.GetCallbackURL())
}

func TestGetEnvDefaults(t *testing.T) {
	c := config.New()

	t.Setenv("ENV", "")
	t.Setenv("APP_NAME", "")
	t.Setenv("API_BASE_URL", "")

	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "MindMate", c.GetAppName())
	require.Equal(t, "http://localhost:8000", c.GetAPIBaseURL())
}
