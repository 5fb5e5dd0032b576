package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

// Default filenames, resolved against the working directory (or the
// directory the user picks during setup).
const (
	DefaultConfigFile  = "config.json"
	DefaultStorageFile = "accounts.json"
	DefaultLogFile     = "quackey.log"
)

var ErrPersistence = errors.New("failed to persist config")

// Config is the single durable settings record, created on first run
// and mutated only through the settings flow.
type Config struct {
	StoragePath string `json:"storage_path"`
	LogPath     string `json:"log_path"`
}

// Env carries process-level overrides read from the environment.
type Env struct {
	ConfigPath string `env:"QUACKEY_CONFIG"`
	NoColor    bool   `env:"QUACKEY_NO_COLOR"`
}

// LoadEnv parses environment overrides, falling back to the default
// config file location.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if e.ConfigPath == "" {
		e.ConfigPath = DefaultConfigFile
	}
	return e, nil
}

// Default returns the first-run configuration rooted in dir.
func Default(dir string) Config {
	return Config{
		StoragePath: filepath.Join(dir, DefaultStorageFile),
		LogPath:     filepath.Join(dir, DefaultLogFile),
	}
}

// Validate rejects a config that does not name both files.
func (c Config) Validate() error {
	if c.StoragePath == "" {
		return errors.New("storage_path must not be empty")
	}
	if c.LogPath == "" {
		return errors.New("log_path must not be empty")
	}
	return nil
}

// Load reads the config file at path. ok reports whether the file
// existed; a missing file is the first-run signal, not an error.
func Load(path string) (cfg Config, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, false, nil
	}
	if err != nil {
		return Config{}, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, false, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, true, nil
}

// Save writes the config file, creating parent directories as needed.
func (c Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Bootstrap creates the directories named by c and makes sure an empty
// accounts file exists at StoragePath so the first load succeeds.
// Changing StoragePath later never copies account data by itself; that
// migration is an explicit step owned by the caller.
func (c Config) Bootstrap() error {
	for _, dir := range []string{filepath.Dir(c.StoragePath), filepath.Dir(c.LogPath)} {
		if dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	if _, err := os.Stat(c.StoragePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(c.StoragePath, []byte("[]\n"), 0o600); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	} else if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
