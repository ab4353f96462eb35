package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "userdir.db", c.DatabaseDSN)
	assert.Equal(t, "sqlite", c.DatabaseEngine)
	assert.Equal(t, "plain", c.PasswordScheme)
	assert.Equal(t, "info", c.LogLevel)
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_OverlaysOnlyPresentFields(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"database_engine": "postgres",
		"database_dsn":    "postgres://localhost/userdir",
	})
	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "postgres", cfg.DatabaseEngine)
	assert.Equal(t, "postgres://localhost/userdir", cfg.DatabaseDSN)
	assert.Equal(t, "plain", cfg.PasswordScheme, "fields absent from JSON keep defaults")
	assert.Equal(t, "info", cfg.LogLevel)
}

func Test_parseJson_NoFlag_NoChanges(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "userdir.db", cfg.DatabaseDSN)
}

func Test_parseFlags_OverridesJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{"database_dsn": "from-json.db"})
	os.Args = []string{"testbin", "-config", path, "-d", "from-flag.db", "-s", "argon2"}

	cfg := LoadConfig()

	assert.Equal(t, "from-flag.db", cfg.DatabaseDSN, "flags take precedence over JSON")
	assert.Equal(t, "argon2", cfg.PasswordScheme)
	assert.Equal(t, "sqlite", cfg.DatabaseEngine)
}
