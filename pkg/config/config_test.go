package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MPEG2BOT_TELEGRAM_API_ID", "12345")
	t.Setenv("MPEG2BOT_TELEGRAM_API_HASH", "0123456789abcdef")
	t.Setenv("MPEG2BOT_TELEGRAM_BOT_TOKEN", "12345:token")
	t.Setenv("MPEG2BOT_TELEGRAM_OWNER_ID", "67890")
}

func TestLoadFromEnv(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 12345, cfg.Telegram.APIID)
	assert.Equal(t, "0123456789abcdef", cfg.Telegram.APIHash)
	assert.Equal(t, "12345:token", cfg.Telegram.BotToken)
	assert.Equal(t, int64(67890), cfg.Telegram.OwnerID)

	// Defaults fill everything that is not required.
	assert.Equal(t, "ffmpeg", cfg.Transcode.FFmpeg.BinaryPath)
	assert.Equal(t, "/tmp/mpeg2bot", cfg.Transcode.FFmpeg.StagingDir)
	assert.Equal(t, "0.0.0.0:8083", cfg.Server.ListenAddr())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("MPEG2BOT_TELEGRAM_API_ID", "")
	t.Setenv("MPEG2BOT_TELEGRAM_API_HASH", "")
	t.Setenv("MPEG2BOT_TELEGRAM_BOT_TOKEN", "")
	t.Setenv("MPEG2BOT_TELEGRAM_OWNER_ID", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.api_id")
	assert.Contains(t, err.Error(), "telegram.bot_token")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
telegram:
  api_id: 111
  api_hash: "hash"
  bot_token: "111:abc"
  owner_id: 222
transcode:
  ffmpeg:
    binary_path: /usr/local/bin/ffmpeg
    staging_dir: /var/tmp/staging
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 111, cfg.Telegram.APIID)
	assert.Equal(t, int64(222), cfg.Telegram.OwnerID)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.Transcode.FFmpeg.BinaryPath)
	assert.Equal(t, "/var/tmp/staging", cfg.Transcode.FFmpeg.StagingDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
telegram:
  api_id: 111
  api_hash: "hash"
  bot_token: "111:abc"
  owner_id: 222
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("MPEG2BOT_TELEGRAM_OWNER_ID", "999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(999), cfg.Telegram.OwnerID)
}
