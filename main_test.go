package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"quackey/internal/accounts"
	"quackey/internal/config"
)

// scriptStdin replaces os.Stdin with a pipe fed by the given lines so
// the real terminal UI can be driven end to end.
func scriptStdin(t *testing.T, lines ...string) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = old
		_ = r.Close()
	})

	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(strings.Join(lines, "\n") + "\n")
	}()
}

func testEnv(t *testing.T) (cfgPath string, cfg config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfgPath = filepath.Join(dir, config.DefaultConfigFile)
	t.Setenv("QUACKEY_CONFIG", cfgPath)
	t.Setenv("QUACKEY_NO_COLOR", "true")

	cfg = config.Default(dir)
	require.NoError(t, cfg.Save(cfgPath))
	require.NoError(t, cfg.Bootstrap())
	return cfgPath, cfg
}

func TestIntegrationAddFlag(t *testing.T) {
	_, cfg := testEnv(t)

	err := run(context.Background(), options{
		addName:   "alice",
		issuer:    "Example",
		secret:    "JBSWY3DPEHPK3PXP",
		digits:    6,
		period:    30,
		algorithm: "SHA1",
	})
	require.NoError(t, err)

	st, err := accounts.Open(cfg.StoragePath, zerolog.Nop())
	require.NoError(t, err)
	acc, err := st.Get("alice")
	require.NoError(t, err)
	require.Equal(t, "Example", acc.Issuer)
}

func TestIntegrationInteractiveAdd(t *testing.T) {
	_, cfg := testEnv(t)

	scriptStdin(t,
		"2",                // manage accounts
		"2",                // add account
		"bob",              // name
		"Example",          // issuer
		"1",                // enter an existing secret
		"JBSWY3DPEHPK3PXP", // secret (stdin is a pipe, so plain input)
		"1",                // 6 digits
		"1",                // 30 seconds
		"1",                // SHA1
		"6",                // back
		"4",                // exit
	)

	require.NoError(t, run(context.Background(), options{}))

	st, err := accounts.Open(cfg.StoragePath, zerolog.Nop())
	require.NoError(t, err)
	acc, err := st.Get("bob")
	require.NoError(t, err)
	require.Equal(t, 6, acc.Digits)
	require.Equal(t, 30, acc.Period)
}

func TestIntegrationExitImmediately(t *testing.T) {
	testEnv(t)
	scriptStdin(t, "4")
	require.NoError(t, run(context.Background(), options{}))
}
