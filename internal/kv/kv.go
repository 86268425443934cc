package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Iron-Ham/taskmgr/internal/errors"
)

// Sentinel errors returned by every backend.
var (
	ErrNotFound      = errors.New("key not found")
	ErrInvalidKey    = errors.New("invalid key")
	ErrQuotaExceeded = errors.ErrStorageFull
	ErrUnavailable   = errors.ErrStorageUnavailable
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// sqliteFileName is the database file Open creates for the sqlite backend.
const sqliteFileName = "taskmgr.db"

// Store is a durable key-value slot. Implementations must replace values
// atomically: a failed Set leaves the previous value readable.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (string, error)

	// Set replaces the value stored under key.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Watcher is implemented by stores that can report external changes.
type Watcher interface {
	// Watch calls fn after key is rewritten, until ctx is canceled.
	Watch(ctx context.Context, key string, fn func()) error
}

// Option configures a Store.
type Option func(*options)

type options struct {
	quota int64
}

// WithQuota caps the total number of value bytes across all keys.
// Zero or a negative value disables the cap.
func WithQuota(bytes int64) Option {
	return func(o *options) {
		o.quota = bytes
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// exceeds reports whether replacing a value of oldSize with one of newSize
// would push total past the quota.
func (o options) exceeds(total, oldSize, newSize int64) bool {
	if o.quota <= 0 {
		return false
	}
	return total-oldSize+newSize > o.quota
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateKey rejects keys that cannot be used as file names.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Backends returns the backend names accepted by Open.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// Open creates a Store for the named backend rooted at dir. The memory
// backend ignores dir.
func Open(backend, dir string, opts ...Option) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir, opts...)
	case BackendSQLite:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create %s: %w", ErrUnavailable, dir, err)
		}
		return NewSQLiteStore(filepath.Join(dir, sqliteFileName), opts...)
	case BackendMemory:
		return NewMemoryStore(opts...), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
