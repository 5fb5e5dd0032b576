package accounts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/c-pro/geche"
	"github.com/rs/zerolog"
)

// Store keeps the account collection in memory and mirrors every
// mutation to a JSON file before reporting success. Accounts keep their
// insertion order across saves and loads.
type Store struct {
	path  string
	order []string
	index geche.Geche[string, *Account]
	log   zerolog.Logger
}

// Open loads the account collection at path. A missing file yields an
// empty store. A file that fails to parse, or that contains a record
// violating any invariant, aborts the whole load with ErrCorruptStorage:
// silently dropping a TOTP credential is worse than a startup failure.
func Open(path string, log zerolog.Logger) (*Store, error) {
	s := &Store{
		path:  path,
		index: geche.NewMapCache[string, *Account](),
		log:   log,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path reports the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Len reports the number of stored accounts.
func (s *Store) Len() int {
	return len(s.order)
}

// Get returns a copy of the named account.
func (s *Store) Get(name string) (Account, error) {
	acc, err := s.index.Get(name)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return *acc, nil
}

// List returns the accounts in insertion order.
func (s *Store) List() []Account {
	out := make([]Account, 0, len(s.order))
	for _, name := range s.order {
		if acc, err := s.index.Get(name); err == nil {
			out = append(out, *acc)
		}
	}
	return out
}

// Add validates acc, inserts it and persists the collection. On a
// persistence failure the account is not retained in memory.
func (s *Store) Add(acc Account) error {
	if err := acc.Validate(); err != nil {
		return err
	}
	if _, err := s.index.Get(acc.Name); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateName, acc.Name)
	}

	s.order = append(s.order, acc.Name)
	s.index.Set(acc.Name, &acc)
	if err := s.save(); err != nil {
		s.order = s.order[:len(s.order)-1]
		_ = s.index.Del(acc.Name)
		return err
	}

	s.log.Info().Str("account", acc.Name).Msg("account added")
	return nil
}

// Edit merges patch into the named account, re-validates the full
// record and persists. On a persistence failure the in-memory record is
// rolled back to its pre-edit value.
func (s *Store) Edit(name string, patch Patch) error {
	prev, err := s.index.Get(name)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	next := patch.apply(*prev)
	if err := next.Validate(); err != nil {
		return err
	}
	if next.Name != name {
		if _, err := s.index.Get(next.Name); err == nil {
			return fmt.Errorf("%w: %q", ErrDuplicateName, next.Name)
		}
	}

	s.rename(name, next.Name)
	if next.Name != name {
		_ = s.index.Del(name)
	}
	s.index.Set(next.Name, &next)

	if err := s.save(); err != nil {
		s.rename(next.Name, name)
		if next.Name != name {
			_ = s.index.Del(next.Name)
		}
		s.index.Set(name, prev)
		return err
	}

	s.log.Info().Str("account", name).Str("now", next.Name).Msg("account updated")
	return nil
}

// Delete removes the named account and persists. A persistence failure
// leaves the record deleted in memory but is surfaced so the caller can
// warn about inconsistent on-disk state.
func (s *Store) Delete(name string) error {
	if _, err := s.index.Get(name); err != nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	_ = s.index.Del(name)

	if err := s.save(); err != nil {
		return err
	}

	s.log.Info().Str("account", name).Msg("account deleted")
	return nil
}

// SaveAs writes the current collection to path and re-points the store
// at it. The previous file is left in place.
func (s *Store) SaveAs(path string) error {
	old := s.path
	s.path = path
	if err := s.save(); err != nil {
		s.path = old
		return err
	}
	s.log.Info().Str("from", old).Str("to", path).Msg("accounts copied to new storage path")
	return nil
}

func (s *Store) rename(from, to string) {
	if from == to {
		return
	}
	for i, n := range s.order {
		if n == from {
			s.order[i] = to
			return
		}
	}
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Warn().Str("path", s.path).Msg("accounts file not found, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var list []Account
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptStorage, err)
	}
	for i, acc := range list {
		acc := acc
		if err := acc.Validate(); err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrCorruptStorage, i, err)
		}
		if _, err := s.index.Get(acc.Name); err == nil {
			return fmt.Errorf("%w: duplicate name %q", ErrCorruptStorage, acc.Name)
		}
		s.order = append(s.order, acc.Name)
		s.index.Set(acc.Name, &acc)
	}

	s.log.Info().Int("count", len(list)).Str("path", s.path).Msg("accounts loaded")
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.List(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := writeFileAtomic(s.path, append(data, '\n')); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// writeFileAtomic replaces path via a temp file and rename so a failed
// write never truncates the previous good state.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
