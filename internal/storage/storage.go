// Package storage is picgrid's durable local key/value store. Several picgrid
// processes may share one file; changes made by another process are reported
// through Watch.
package storage

import (
	"context"
	"errors"
	"sync"
)

// Keys
const (
	KeyTheme            = "theme"
	KeySystemAppearance = "system-appearance"
)

// WatchedKeys are the keys Watch reports changes for
var WatchedKeys = []string{KeyTheme, KeySystemAppearance}

// ErrUnavailable is returned by stores that cannot persist
var ErrUnavailable = errors.New("storage unavailable")

// ChangeFunc receives a key whose value was changed by someone else
type ChangeFunc func(key, value string)

// Store is a small string key/value store
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Watch reports changes made outside this Store until ctx is done
	Watch(ctx context.Context, fn ChangeFunc) error
}

// Memory keeps values for the life of the process
type Memory struct {
	mu       sync.Mutex
	values   map[string]string
	watchers []ChangeFunc
	// FailWrites makes Set return ErrUnavailable
	FailWrites bool
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	m.values[key] = value
	return nil
}

// Watch implements Store
func (m *Memory) Watch(ctx context.Context, fn ChangeFunc) error {
	m.mu.Lock()
	m.watchers = append(m.watchers, fn)
	idx := len(m.watchers) - 1
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		m.watchers[idx] = nil
		m.mu.Unlock()
	}()
	return nil
}

// External stores a value as if another process wrote it and notifies
// watchers synchronously
func (m *Memory) External(key, value string) {
	m.mu.Lock()
	m.values[key] = value
	watchers := append([]ChangeFunc(nil), m.watchers...)
	m.mu.Unlock()

	for _, w := range watchers {
		if w != nil {
			w(key, value)
		}
	}
}

// Open returns the Bolt store at path, or a Memory store when disabled is
// set or the file location cannot be prepared. The error reports why the
// fallback was taken.
func Open(path string, disabled bool) (Store, error) {
	if disabled {
		return NewMemory(), nil
	}
	b, err := NewBolt(path)
	if err != nil {
		return NewMemory(), err
	}
	return b, nil
}
