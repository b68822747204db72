package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("VAULT_SERVER_URL", "http://env.example/api")
	t.Setenv("VAULT_NOTIFICATION_LIFETIME", "1500ms")
	t.Setenv("VAULT_S3_ACCESS_KEY", "admin")
	t.Setenv("VAULT_S3_USE_PATH_STYLE", "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "http://env.example/api", cfg.ServerBaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.NotificationLifetime)
	assert.Equal(t, "admin", cfg.S3AccessKey)
	assert.True(t, cfg.S3UsePathStyle)
	assert.Equal(t, "downloads", cfg.DownloadDir, "unset variable keeps its value")
}

func Test_parseEnv_BadValues(t *testing.T) {
	t.Run("duration", func(t *testing.T) {
		t.Setenv("VAULT_REQUEST_TIMEOUT", "soon")
		require.Error(t, parseEnv(&Config{}))
	})

	t.Run("bool", func(t *testing.T) {
		t.Setenv("VAULT_S3_USE_PATH_STYLE", "maybe")
		require.Error(t, parseEnv(&Config{}))
	})
}
