package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingIsFirstRun(t *testing.T) {
	_, ok, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := Config{
		StoragePath: filepath.Join(dir, "accounts.json"),
		LogPath:     filepath.Join(dir, "quackey.log"),
	}
	require.NoError(t, cfg.Save(path))

	got, ok, err := Load(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cfg, got)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{oops"), 0o600))
	_, _, err := Load(bad)
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"storage_path":"","log_path":""}`), 0o600))
	_, _, err = Load(empty)
	require.Error(t, err)
}

func TestBootstrap(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		StoragePath: filepath.Join(dir, "data", "accounts.json"),
		LogPath:     filepath.Join(dir, "logs", "quackey.log"),
	}

	require.NoError(t, cfg.Bootstrap())

	data, err := os.ReadFile(cfg.StoragePath)
	require.NoError(t, err)
	var list []any
	require.NoError(t, json.Unmarshal(data, &list))
	assert.Empty(t, list)

	info, err := os.Stat(filepath.Dir(cfg.LogPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// A second bootstrap must not clobber existing account data.
	require.NoError(t, os.WriteFile(cfg.StoragePath, []byte(`[{"name":"a"}]`), 0o600))
	require.NoError(t, cfg.Bootstrap())
	data, err = os.ReadFile(cfg.StoragePath)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"a"}]`, string(data))
}

func TestDefault(t *testing.T) {
	cfg := Default("/tmp/quackey")
	assert.Equal(t, "/tmp/quackey/accounts.json", cfg.StoragePath)
	assert.Equal(t, "/tmp/quackey/quackey.log", cfg.LogPath)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("QUACKEY_CONFIG", "")
	t.Setenv("QUACKEY_NO_COLOR", "")
	e, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, e.ConfigPath)
	assert.False(t, e.NoColor)

	t.Setenv("QUACKEY_CONFIG", "/tmp/custom.json")
	t.Setenv("QUACKEY_NO_COLOR", "true")
	e, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", e.ConfigPath)
	assert.True(t, e.NoColor)
}
