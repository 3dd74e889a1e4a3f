package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileName     = "picgrid.db"
	settingsBucket = "settings"
	lockTimeout    = time.Second
)

// Bolt stores settings in a bbolt file. The file is opened for each
// operation so other picgrid processes can take the lock in between.
type Bolt struct {
	path string

	mu   sync.Mutex
	last map[string]string
}

// DefaultPath returns the settings file under the user config directory
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, "picgrid", dbFileName), nil
}

// NewBolt prepares a store at path, creating parent directories.
// An empty path uses DefaultPath.
func NewBolt(path string) (*Bolt, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	b := &Bolt{path: path, last: make(map[string]string)}
	b.last = b.snapshot()
	return b, nil
}

// Path returns the database file path
func (b *Bolt) Path() string {
	return b.path
}

func (b *Bolt) open(readOnly bool) (*bolt.DB, error) {
	db, err := bolt.Open(b.path, 0600, &bolt.Options{Timeout: lockTimeout, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database %s: %w", b.path, err)
	}
	return db, nil
}

// Get implements Store. A missing file or bucket is reported as not found.
func (b *Bolt) Get(key string) (string, bool, error) {
	if _, err := os.Stat(b.path); errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}

	db, err := b.open(true)
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var (
		value string
		found bool
	)
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(settingsBucket))
		if bucket == nil {
			return nil
		}
		if v := bucket.Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, found, nil
}

// Set implements Store
func (b *Bolt) Set(key, value string) error {
	// Record first: the watcher compares what it reads against last
	b.mu.Lock()
	prev, had := b.last[key]
	b.last[key] = value
	b.mu.Unlock()

	if err := b.put(key, value); err != nil {
		b.mu.Lock()
		if had {
			b.last[key] = prev
		} else {
			delete(b.last, key)
		}
		b.mu.Unlock()
		return err
	}
	return nil
}

func (b *Bolt) put(key, value string) error {
	db, err := b.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", settingsBucket, err)
		}
		return bucket.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// snapshot reads the watched keys, logging instead of failing
func (b *Bolt) snapshot() map[string]string {
	out := make(map[string]string, len(WatchedKeys))
	for _, key := range WatchedKeys {
		v, ok, err := b.Get(key)
		if err != nil {
			log.Printf("Storage: failed to read %s: %v", key, err)
			continue
		}
		if ok {
			out[key] = v
		}
	}
	return out
}

// changes re-reads the watched keys and returns those that differ from the
// last known values, updating them
func (b *Bolt) changes() map[string]string {
	current := b.snapshot()

	b.mu.Lock()
	defer b.mu.Unlock()
	changed := make(map[string]string)
	for _, key := range WatchedKeys {
		v, ok := current[key]
		if !ok {
			continue
		}
		if prev, had := b.last[key]; !had || prev != v {
			changed[key] = v
			b.last[key] = v
		}
	}
	return changed
}
