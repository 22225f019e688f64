package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadClientDefaults(t *testing.T) {
	cfg, err := LoadClient(nil)
	require.NoError(t, err)

	require.Equal(t, "ws://localhost:8080/ws", cfg.ServerURL)
	require.Equal(t, "lobby", cfg.RoomID)
	require.Equal(t, 20, cfg.HistorySize)
	require.Equal(t, 500, cfg.Scrollback)
	require.False(t, cfg.Timestamps)
}

func TestLoadClientEnvOverridesDefaults(t *testing.T) {
	t.Setenv("VANTAGE_SERVER_URL", "ws://play.example.net/ws")
	t.Setenv("VANTAGE_HISTORY_SIZE", "50")
	t.Setenv("VANTAGE_TIMESTAMPS", "true")

	cfg, err := LoadClient(nil)
	require.NoError(t, err)

	require.Equal(t, "ws://play.example.net/ws", cfg.ServerURL)
	require.Equal(t, 50, cfg.HistorySize)
	require.True(t, cfg.Timestamps)
}

func TestLoadClientFlagsOverrideEnv(t *testing.T) {
	t.Setenv("VANTAGE_ROOM", "env-room")

	cfg, err := LoadClient([]string{"-room", "flag-room", "-name", "ada"})
	require.NoError(t, err)

	require.Equal(t, "flag-room", cfg.RoomID)
	require.Equal(t, "ada", cfg.Username)
}

func TestLoadClientBadFlag(t *testing.T) {
	_, err := LoadClient([]string{"-history-size", "many"})
	require.Error(t, err)
}

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer(nil)
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 25, cfg.ReplayLines)
	require.Equal(t, 100, cfg.RoomBacklog)
}

func TestLoadServerEnvAndFlags(t *testing.T) {
	t.Setenv("VANTAGE_ADDR", ":9999")

	cfg, err := LoadServer([]string{"-replay-lines", "5"})
	require.NoError(t, err)

	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, 5, cfg.ReplayLines)
}
