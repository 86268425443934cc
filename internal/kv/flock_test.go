package kv

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileLock_LockUnlock(t *testing.T) {
	dir := t.TempDir()
	fl := NewFileLock(dir)

	if err := fl.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	// Lock file should exist
	lockPath := filepath.Join(dir, lockFileName)
	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("lock file should exist: %v", err)
	}

	if err := fl.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
}

func TestFileLock_SharedLocks(t *testing.T) {
	dir := t.TempDir()
	a := NewFileLock(dir)
	b := NewFileLock(dir)

	if err := a.RLock(); err != nil {
		t.Fatalf("RLock a: %v", err)
	}
	if err := b.RLock(); err != nil {
		t.Fatalf("RLock b: %v", err)
	}
	_ = a.Unlock()
	_ = b.Unlock()
}

func TestFileLock_UnlockWithoutLock(t *testing.T) {
	fl := NewFileLock(t.TempDir())

	// Unlock without Lock should be a no-op
	if err := fl.Unlock(); err != nil {
		t.Fatalf("Unlock without Lock should not error: %v", err)
	}
}

func TestFileLock_LockInvalidDir(t *testing.T) {
	fl := NewFileLock("/nonexistent/dir/path")
	if err := fl.Lock(); err == nil {
		t.Error("Lock should fail for nonexistent directory")
	}
	if err := fl.RLock(); err == nil {
		t.Error("RLock should fail for nonexistent directory")
	}
}

func TestFileLock_ReusableAfterUnlock(t *testing.T) {
	fl := NewFileLock(t.TempDir())

	for i := 0; i < 2; i++ {
		if err := fl.Lock(); err != nil {
			t.Fatalf("Lock %d: %v", i, err)
		}
		if err := fl.Unlock(); err != nil {
			t.Fatalf("Unlock %d: %v", i, err)
		}
	}
}
