package store

import (
	"context"
	"sync"
)

// MemoryStorage is a map-backed Storage. GetErr and SetErr, when set, are
// returned instead of touching the map.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]string
	quota   int64

	GetErr error
	SetErr error
}

// NewMemoryStorage creates an empty store
func NewMemoryStorage(quota int64) *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]string),
		quota:   quota,
	}
}

// Get returns the value under key
func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return "", m.GetErr
	}
	value, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key
func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SetErr != nil {
		return m.SetErr
	}
	if err := checkQuota(m.quota, value); err != nil {
		return err
	}
	m.entries[key] = value
	return nil
}

// Close is a no-op
func (m *MemoryStorage) Close() error {
	return nil
}
