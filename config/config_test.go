package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")
	assert.Equal(t, "ChainTrace", cfg.System.Appid)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 1816, cfg.Web.Port)
}

func TestLoadConfigEnvOverrideDoesNotMutateDefaults(t *testing.T) {
	t.Setenv("CHAINTRACE_DB_HOST", "db.internal")
	t.Setenv("CHAINTRACE_WEB_JWT_SECRET", "override-secret")

	cfg := LoadConfig("")
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "override-secret", cfg.Web.JwtSecret)

	assert.Equal(t, "127.0.0.1", DefaultAppConfig.Database.Host)
	assert.NotEqual(t, "override-secret", DefaultAppConfig.Web.JwtSecret)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chaintrace.yml")
	data := []byte("web:\n  host: 127.0.0.1\n  port: 9090\n  jwt_secret: file-secret\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg := LoadConfig(path)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "file-secret", cfg.Web.JwtSecret)
}
