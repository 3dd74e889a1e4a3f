package storage

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch implements Store. It watches the directory holding the database
// so the file may be created after Watch starts. Values written through
// this Bolt are not reported back.
func (b *Bolt) Watch(ctx context.Context, fn ChangeFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(b.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(b.path), err)
	}

	target := filepath.Clean(b.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				changed := b.changes()
				for _, key := range WatchedKeys {
					if v, ok := changed[key]; ok {
						fn(key, v)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Storage: watcher error: %v", err)
			}
		}
	}()
	return nil
}
