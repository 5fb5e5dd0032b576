package commands

import (
	"fmt"
	"strings"

	"quackey/internal/accounts"
	"quackey/internal/config"
	"quackey/internal/logger"
	"quackey/internal/otp"
)

// AddAccount registers a new account without entering the interactive
// session, for scripted enrollment. It bootstraps storage the same way
// the first interactive run would.
func AddAccount(env config.Env, name, issuer, secret string, digits, period int, algorithm string) error {
	cfg, ok, err := config.Load(env.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !ok {
		cfg = config.Default(".")
		if err := cfg.Save(env.ConfigPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
	}
	if err := cfg.Bootstrap(); err != nil {
		return fmt.Errorf("failed to prepare storage: %w", err)
	}

	log, closeLog, err := logger.New(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		_ = closeLog.Close()
	}()

	store, err := accounts.Open(cfg.StoragePath, log)
	if err != nil {
		return fmt.Errorf("failed to open accounts file: %w", err)
	}

	normalized, err := otp.NormalizeSecret(secret)
	if err != nil {
		return fmt.Errorf("invalid secret: %w", err)
	}

	acc := accounts.Account{
		Name:      name,
		Issuer:    issuer,
		Secret:    normalized,
		Digits:    digits,
		Period:    period,
		Algorithm: otp.Algorithm(strings.ToUpper(algorithm)),
	}
	if err := store.Add(acc); err != nil {
		return err
	}

	fmt.Printf("Account %q added to %s.\n", name, cfg.StoragePath)
	return nil
}
