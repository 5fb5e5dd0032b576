package commands

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quackey/internal/accounts"
	"quackey/internal/config"
	"quackey/internal/otp"
)

func TestAddAccount(t *testing.T) {
	dir := t.TempDir()
	env := config.Env{ConfigPath: filepath.Join(dir, config.DefaultConfigFile)}
	cfg := config.Default(dir)
	require.NoError(t, cfg.Save(env.ConfigPath))

	require.NoError(t, AddAccount(env, "alice", "Example", "jbsw y3dp ehpk 3pxp", 6, 30, "sha1"))

	st, err := accounts.Open(cfg.StoragePath, zerolog.Nop())
	require.NoError(t, err)
	got, err := st.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", got.Secret)
	assert.Equal(t, otp.AlgorithmSHA1, got.Algorithm)

	err = AddAccount(env, "alice", "", "JBSWY3DPEHPK3PXP", 6, 30, "SHA1")
	assert.ErrorIs(t, err, accounts.ErrDuplicateName)
}

func TestAddAccountRejectsBadSecret(t *testing.T) {
	dir := t.TempDir()
	env := config.Env{ConfigPath: filepath.Join(dir, config.DefaultConfigFile)}
	require.NoError(t, config.Default(dir).Save(env.ConfigPath))

	err := AddAccount(env, "alice", "", "not base32!", 6, 30, "SHA1")
	assert.ErrorIs(t, err, otp.ErrInvalidSecret)
}
