package kv

import "sync"

// MemoryStore is a map-backed Store. Values are lost when the process
// exits.
type MemoryStore struct {
	mu     sync.RWMutex
	m      map[string]string
	opts   options
	closed bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{m: make(map[string]string), opts: buildOptions(opts)}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", ErrUnavailable
	}
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set replaces the value stored under key.
func (s *MemoryStore) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrUnavailable
	}
	if s.opts.quota > 0 {
		var total int64
		for _, v := range s.m {
			total += int64(len(v))
		}
		if s.opts.exceeds(total, int64(len(s.m[key])), int64(len(value))) {
			return ErrQuotaExceeded
		}
	}
	s.m[key] = value
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrUnavailable
	}
	delete(s.m, key)
	return nil
}

// Close marks the store unavailable. Later calls fail with ErrUnavailable.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
