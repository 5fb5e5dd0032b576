package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New opens (or creates) the append-only audit log at path. Every run
// is tagged with a fresh run_id so interleaved histories stay
// attributable. Callers must never put secrets or generated codes on
// this logger.
func New(path string) (zerolog.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log := zerolog.New(f).With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
	return log, f, nil
}
