package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Iron-Ham/taskmgr/internal/errors"
)

const (
	tmpSuffix = ".tmp"

	// valuesDirName is the subdirectory holding one file per key. Other
	// files in the data directory, such as logs, never count toward the
	// quota.
	valuesDirName = "kv"
)

// FileStore keeps each key in its own file under dir/kv.
type FileStore struct {
	dir  string
	opts options
}

// NewFileStore creates the directory if needed and returns a store rooted
// there.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: directory is required", ErrUnavailable)
	}
	values := filepath.Join(dir, valuesDirName)
	if err := os.MkdirAll(values, 0755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrUnavailable, values, err)
	}
	return &FileStore{dir: values, opts: buildOptions(opts)}, nil
}

// Dir returns the directory holding the value files.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file that holds key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key)
}

// Get reads the value of key under a shared lock.
func (s *FileStore) Get(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	fl := NewFileLock(s.dir)
	if err := fl.RLock(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = fl.Unlock() }()

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: read %s: %w", ErrUnavailable, key, err)
	}
	return string(data), nil
}

// Set replaces the value of key. The write is atomic: data is written to a
// temporary file first, then renamed into place, all under an exclusive
// lock.
func (s *FileStore) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	fl := NewFileLock(s.dir)
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = fl.Unlock() }()

	target := s.Path(key)

	if s.opts.quota > 0 {
		total, err := s.usage()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		var oldSize int64
		if info, err := os.Stat(target); err == nil {
			oldSize = info.Size()
		}
		if s.opts.exceeds(total, oldSize, int64(len(value))) {
			return fmt.Errorf("%w: %s needs %d bytes", ErrQuotaExceeded, key, len(value))
		}
	}

	tmp := target + tmpSuffix
	if err := os.WriteFile(tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("%w: write temp file: %w", ErrUnavailable, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("%w: rename temp file: %w", ErrUnavailable, err)
	}

	return nil
}

// Delete removes key's file.
func (s *FileStore) Delete(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	fl := NewFileLock(s.dir)
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = fl.Unlock() }()

	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %w", ErrUnavailable, key, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *FileStore) Close() error { return nil }

// usage sums the sizes of all value files. The caller must hold the lock.
func (s *FileStore) usage() (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == lockFileName || strings.HasSuffix(name, tmpSuffix) {
			continue
		}
		if errors.Is(ValidateKey(name), ErrInvalidKey) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}
