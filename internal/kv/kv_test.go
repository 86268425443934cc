package kv

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

type storeFactory func(t *testing.T, opts ...Option) Store

func backends() map[string]storeFactory {
	return map[string]storeFactory{
		BackendFile: func(t *testing.T, opts ...Option) Store {
			t.Helper()
			s, err := NewFileStore(t.TempDir(), opts...)
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}
			return s
		},
		BackendSQLite: func(t *testing.T, opts ...Option) Store {
			t.Helper()
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"), opts...)
			if err != nil {
				t.Fatalf("NewSQLiteStore: %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
		BackendMemory: func(t *testing.T, opts ...Option) Store {
			t.Helper()
			return NewMemoryStore(opts...)
		},
	}
}

func TestStore_Contract(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Run("get missing key", func(t *testing.T) {
				s := newStore(t)
				if _, err := s.Get("absent"); !errors.Is(err, ErrNotFound) {
					t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
				}
			})

			t.Run("set then get", func(t *testing.T) {
				s := newStore(t)
				if err := s.Set("taskManager_tasks", `[{"id":"1"}]`); err != nil {
					t.Fatalf("Set: %v", err)
				}
				got, err := s.Get("taskManager_tasks")
				if err != nil {
					t.Fatalf("Get: %v", err)
				}
				if got != `[{"id":"1"}]` {
					t.Errorf("Get() = %q", got)
				}
			})

			t.Run("set replaces whole value", func(t *testing.T) {
				s := newStore(t)
				_ = s.Set("k", "a much longer first value")
				if err := s.Set("k", "short"); err != nil {
					t.Fatalf("Set: %v", err)
				}
				if got, _ := s.Get("k"); got != "short" {
					t.Errorf("Get() = %q, want %q", got, "short")
				}
			})

			t.Run("empty value is stored", func(t *testing.T) {
				s := newStore(t)
				if err := s.Set("k", ""); err != nil {
					t.Fatalf("Set: %v", err)
				}
				got, err := s.Get("k")
				if err != nil || got != "" {
					t.Errorf("Get() = %q, %v; want empty, nil", got, err)
				}
			})

			t.Run("delete", func(t *testing.T) {
				s := newStore(t)
				_ = s.Set("k", "v")
				if err := s.Delete("k"); err != nil {
					t.Fatalf("Delete: %v", err)
				}
				if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
					t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
				}
				if err := s.Delete("k"); err != nil {
					t.Errorf("Delete of absent key should succeed, got %v", err)
				}
			})

			t.Run("invalid key", func(t *testing.T) {
				s := newStore(t)
				for _, key := range []string{"", "../escape", "a/b", ".."} {
					if err := s.Set(key, "v"); !errors.Is(err, ErrInvalidKey) {
						t.Errorf("Set(%q) error = %v, want ErrInvalidKey", key, err)
					}
				}
			})

			t.Run("quota rejects oversized write and keeps old value", func(t *testing.T) {
				s := newStore(t, WithQuota(16))
				if err := s.Set("a", "12345678"); err != nil {
					t.Fatalf("Set within quota: %v", err)
				}
				if err := s.Set("b", "123456789"); !errors.Is(err, ErrQuotaExceeded) {
					t.Fatalf("Set over quota error = %v, want ErrQuotaExceeded", err)
				}
				if _, err := s.Get("b"); !errors.Is(err, ErrNotFound) {
					t.Errorf("rejected write should not be visible, got %v", err)
				}
				// Replacing a key only counts the new size.
				if err := s.Set("a", strings.Repeat("x", 16)); err != nil {
					t.Errorf("replacing within quota should succeed: %v", err)
				}
				if err := s.Set("a", strings.Repeat("x", 17)); !errors.Is(err, ErrQuotaExceeded) {
					t.Errorf("replacement over quota error = %v", err)
				}
				if got, _ := s.Get("a"); len(got) != 16 {
					t.Errorf("old value should survive a rejected write, len = %d", len(got))
				}
			})

			t.Run("closed store is unavailable", func(t *testing.T) {
				if name != BackendMemory {
					t.Skip("only the memory backend tracks closed state")
				}
				s := newStore(t)
				_ = s.Close()
				if err := s.Set("k", "v"); !errors.Is(err, ErrUnavailable) {
					t.Errorf("Set after Close error = %v, want ErrUnavailable", err)
				}
			})
		})
	}
}

func TestValidateKey(t *testing.T) {
	valid := []string{"taskManager_tasks", "taskManager_theme", "a.b-c_d"}
	for _, k := range valid {
		if err := ValidateKey(k); err != nil {
			t.Errorf("ValidateKey(%q) = %v, want nil", k, err)
		}
	}
	invalid := []string{"", ".", "..", "a b", "a/b", `a\b`}
	for _, k := range invalid {
		if err := ValidateKey(k); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ValidateKey(%q) = %v, want ErrInvalidKey", k, err)
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range Backends() {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(backend, dir)
			if err != nil {
				t.Fatalf("Open(%q): %v", backend, err)
			}
			defer s.Close()
			if err := s.Set("k", backend); err != nil {
				t.Fatalf("Set: %v", err)
			}
		})
	}

	if _, err := Open("redis", dir); err == nil {
		t.Error("Open should reject unknown backends")
	}
}

func TestQuotaErrorsAreStorageFull(t *testing.T) {
	s := NewMemoryStore(WithQuota(1))
	err := s.Set("k", "too big")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("error = %v, want ErrQuotaExceeded", err)
	}
}
