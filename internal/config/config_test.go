package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// unsetEnv clears key for the duration of the test. An empty but present
// variable would still override the file.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfig_FromFile(t *testing.T) {
	chdirTemp(t)
	unsetEnv(t, "TURSO_DATABASE_URL")
	unsetEnv(t, "DEV_MODE")
	unsetEnv(t, "FITTRACK_LOG_LEVEL")
	unsetEnv(t, "FITTRACK_LOG_FORMAT")
	t.Setenv("FITTRACK_CONFIG", writeConfig(t, `
[database]
connection_string = "libsql://fittrack.turso.io"

[log]
level = "debug"
`))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "libsql://fittrack.turso.io", cfg.DB.ConnectionString)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Groups.CodeAttempts)
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	chdirTemp(t)
	t.Setenv("FITTRACK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("TURSO_DATABASE_URL", "libsql://env.turso.io")
	t.Setenv("TURSO_AUTH_TOKEN", "secret")
	t.Setenv("FITTRACK_LOG_FORMAT", "json")
	unsetEnv(t, "FITTRACK_LOG_LEVEL")
	unsetEnv(t, "DEV_MODE")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "libsql://env.turso.io", cfg.DB.ConnectionString)
	assert.Equal(t, "secret", cfg.DB.AuthToken)
	assert.Equal(t, "libsql://env.turso.io?authToken=secret", cfg.DB.DSN())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_DevMode(t *testing.T) {
	chdirTemp(t)
	t.Setenv("FITTRACK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	unsetEnv(t, "TURSO_DATABASE_URL")
	t.Setenv("DEV_MODE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DevConnectionString, cfg.DB.ConnectionString)
}

func TestLoadConfig_MissingDatabase(t *testing.T) {
	chdirTemp(t)
	t.Setenv("FITTRACK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	unsetEnv(t, "TURSO_DATABASE_URL")
	unsetEnv(t, "DEV_MODE")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DBConfig
		want string
	}{
		{"no token", DBConfig{ConnectionString: "libsql://db.turso.io"}, "libsql://db.turso.io"},
		{"token", DBConfig{ConnectionString: "libsql://db.turso.io", AuthToken: "abc"}, "libsql://db.turso.io?authToken=abc"},
		{"local file keeps query", DBConfig{ConnectionString: DevConnectionString, AuthToken: "abc"}, DevConnectionString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
