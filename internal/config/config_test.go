package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("LEAGUE_ID", "123456789")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "123456789", cfg.League.LeagueID)
	assert.Equal(t, 17, cfg.League.Weeks)
	assert.Equal(t, "https://api.sleeper.app/v1", cfg.SleeperAPI.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.SleeperAPI.Timeout)
	assert.Equal(t, ":8000", cfg.Server.ListenAddr)
	assert.False(t, cfg.TelegramBot.Enabled())
}

func TestNewRequiresLeagueID(t *testing.T) {
	// t.Setenv registers the restore; the variable must be truly unset for
	// the required check to fire.
	t.Setenv("LEAGUE_ID", "placeholder")
	os.Unsetenv("LEAGUE_ID")

	_, err := New()
	assert.Error(t, err)
}

func TestTelegramEnabled(t *testing.T) {
	t.Setenv("LEAGUE_ID", "123456789")
	t.Setenv("TELEGRAM_TOKEN", "tok")
	t.Setenv("CHAT_ID", "-100999")

	cfg, err := New()
	require.NoError(t, err)
	assert.True(t, cfg.TelegramBot.Enabled())
	assert.Equal(t, int64(-100999), cfg.TelegramBot.ChatID)
}
