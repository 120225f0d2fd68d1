package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, DBPath(dir), cfg.Store.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0o755))

	content := `store:
  driver: memory
server:
  addr: ":9090"
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0o644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BREWSCOUT_STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/brewscout")
	t.Setenv("BREWSCOUT_ADDR", ":7070")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/brewscout", cfg.Store.DSN)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0o755))
	content := "store:\n  driver: cassandra\n"
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0o644))

	_, err := Load(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	// A second init must not clobber an existing config.
	err := WriteDefault(dir)
	assert.Error(t, err)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
}

func TestWrite_RoundTrips(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Store.Driver = DriverMemory
	cfg.Server.Addr = ":9191"
	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, loaded.Store.Driver)
	assert.Equal(t, ":9191", loaded.Server.Addr)
}

func TestConfigPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("/base", DefaultConfigDir), ConfigDir("/base"))
	assert.Equal(t, filepath.Join("/base", DefaultConfigDir, DefaultConfigFile), ConfigFilePath("/base"))
	assert.Equal(t, filepath.Join("/base", DefaultConfigDir, DefaultDBFile), DBPath("/base"))
}
