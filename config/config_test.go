package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DB_DSN", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "LOG_LEVEL", "UPLOAD_MAX_BYTES", "TEMPLATE_DIR"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
	assert.Equal(t, "postgres://postgres:@localhost:5432/rapor?sslmode=disable", cfg.DatabaseDSN)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("DB_DSN", "postgres://u:p@db:5432/x")
	t.Setenv("UPLOAD_MAX_BYTES", "2048")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DatabaseDSN)
	assert.Equal(t, int64(2048), cfg.UploadMaxBytes)
}

func TestLoadDotenv(t *testing.T) {
	t.Setenv("TEMPLATE_DIR", "")
	require.NoError(t, os.Unsetenv("TEMPLATE_DIR"))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEMPLATE_DIR=/srv/templates\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TEMPLATE_DIR") })

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/templates", cfg.TemplateDir)
}

func TestLoadRejectsBadUploadLimit(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "-1")
	_, err := Load()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
