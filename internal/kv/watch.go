package kv

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events an atomic rename produces.
const watchDebounce = 50 * time.Millisecond

// Watch calls fn whenever key's file is created, rewritten or removed, by
// this or any other process, until ctx is canceled. The directory is
// watched rather than the file because Set replaces the file by rename.
func (s *FileStore) Watch(ctx context.Context, key string, fn func()) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	go watchLoop(ctx, watcher, filepath.Clean(s.Path(key)), fn)
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, fn func()) {
	defer func() { _ = watcher.Close() }()

	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer
	pending := false

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			if pending {
				pending = false
				fn()
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Dropped events are recovered by the next write.
		}
	}
}
