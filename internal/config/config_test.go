package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, key := range []string{
		"DISCORD_TOKEN", "DISCORD_APP_ID", "DOWNLOAD_API_URL", "FETCH_TIMEOUT_SEC",
		"HTTP_ADDR", "DISCORD_WEBHOOK_URL", "DISCORD_PING_USER_ID", "LOG_LEVEL",
		"LOG_JSON", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "config.json"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("DISCORD_APP_ID", "123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, "123", cfg.AppID)
	assert.Equal(t, DefaultDownloadAPI, cfg.DownloadAPIURL)
	assert.Equal(t, 180*time.Second, cfg.FetchTimeout)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoad_FromFile(t *testing.T) {
	dir := isolate(t)
	blob := `{"token":"file-token","appId":"999","webhookUrl":"https://discord.test/hook"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(blob), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "999", cfg.AppID)
	assert.Equal(t, "https://discord.test/hook", cfg.WebhookURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"token":"file","appId":"1"}`), 0o600))
	t.Setenv("DISCORD_TOKEN", "env")
	t.Setenv("FETCH_TIMEOUT_SEC", "30")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_JSON", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.Token)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		isolate(t)
		t.Setenv("DISCORD_APP_ID", "1")
		_, err := Load()
		assert.EqualError(t, err, "DISCORD_TOKEN is required")
	})

	t.Run("missing app id", func(t *testing.T) {
		isolate(t)
		t.Setenv("DISCORD_TOKEN", "tok")
		_, err := Load()
		assert.EqualError(t, err, "DISCORD_APP_ID is required")
	})

	t.Run("bad timeout", func(t *testing.T) {
		isolate(t)
		t.Setenv("DISCORD_TOKEN", "tok")
		t.Setenv("DISCORD_APP_ID", "1")
		t.Setenv("FETCH_TIMEOUT_SEC", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0o600))
		_, err := Load()
		assert.Error(t, err)
	})
}
