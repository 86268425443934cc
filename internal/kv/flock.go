package kv

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockFileName = "kv.lock"

// FileLock provides cross-process mutual exclusion on a directory using
// an advisory lock on a lock file inside it. Readers take a shared lock,
// writers an exclusive one, so a CLI invocation and an open TUI never
// observe a half-written value.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a FileLock for the given directory. The lock file
// is created inside dir as "kv.lock".
func NewFileLock(dir string) *FileLock {
	return &FileLock{
		path: filepath.Join(dir, lockFileName),
	}
}

// Lock acquires an exclusive lock, blocking until available.
func (fl *FileLock) Lock() error {
	return fl.acquire(true)
}

// RLock acquires a shared lock, blocking until available.
func (fl *FileLock) RLock() error {
	return fl.acquire(false)
}

func (fl *FileLock) acquire(exclusive bool) error {
	f, err := os.OpenFile(fl.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := lockFile(f, exclusive); err != nil {
		_ = f.Close()
		return fmt.Errorf("lock: %w", err)
	}
	fl.file = f
	return nil
}

// Unlock releases the lock and closes the lock file.
func (fl *FileLock) Unlock() error {
	if fl.file == nil {
		return nil
	}

	if err := unlockFile(fl.file); err != nil {
		_ = fl.file.Close()
		fl.file = nil
		return fmt.Errorf("unlock: %w", err)
	}

	err := fl.file.Close()
	fl.file = nil
	return err
}
