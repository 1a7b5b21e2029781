package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "./downloads", cfg.DownloadDir)
	assert.Equal(t, time.Hour, cfg.FileRetention)
	assert.Equal(t, 30*time.Minute, cfg.CleanupEvery)
	assert.Equal(t, "yt-dlp", cfg.YtdlpPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DOWNLOAD_DIR", "/var/media")
	t.Setenv("FILE_RETENTION", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/var/media", cfg.DownloadDir)
	assert.Equal(t, 15*time.Minute, cfg.FileRetention)
}

func TestOrigins(t *testing.T) {
	cfg := Config{AllowedOrigins: "http://localhost:3000, https://app.example.com ,"}
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.Origins())

	cfg = Config{AllowedOrigins: "http://localhost:3000"}
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Origins())
}
