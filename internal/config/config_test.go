package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	for _, name := range []string{"BOT_TOKEN", "TELEGRAM_BOT_TOKEN", "CHAT_ID", "TELEGRAM_CHAT_ID",
		"GECKO_BASE_URL", "PAIRS_FILE", "HTTPS_PROXY", "SQLITE_PATH", "DIGEST_CRON", "LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "pairs.txt", cfg.PairsFile)
	assert.Equal(t, time.Second, cfg.PairPause())
	assert.Equal(t, 60*time.Second, cfg.CyclePause())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Nil(t, cfg.DigestSchedule())
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  bot_token: file-token
  chat_id: "100"
pairs_file: configs/pairs.txt
polling:
  pair_pause: 500ms
  cycle_pause: 2m
digest:
  cron: "@every 1h"
database:
  sqlite_path: data/readings.db
`)
	t.Setenv("BOT_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "100", cfg.Telegram.ChatID)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, "configs/pairs.txt", cfg.PairsFile)
	assert.Equal(t, 500*time.Millisecond, cfg.PairPause())
	assert.Equal(t, 2*time.Minute, cfg.CyclePause())
	assert.Equal(t, "data/readings.db", cfg.Database.SQLitePath)
	require.NotNil(t, cfg.DigestSchedule())

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(time.Hour), cfg.DigestSchedule().Next(start))
}

func TestLoad_BadDuration(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "polling:\n  cycle_pause: soon\n"))
	assert.ErrorContains(t, err, "polling.cycle_pause")
}

func TestLoad_BadCron(t *testing.T) {
	clearEnv(t)
	t.Setenv("DIGEST_CRON", "every tuesday")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "digest.cron")
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "telegram: [unterminated"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate_TelegramPair(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHAT_ID", "42")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
