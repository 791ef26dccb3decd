package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by Get when the key has never been written
	ErrNotFound = errors.New("storage key not found")
	// ErrUnavailable wraps any failure of the underlying medium
	ErrUnavailable = errors.New("storage unavailable")
	// ErrQuotaExceeded is returned by Set when the value does not fit
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Storage is a string key-value store holding serialized planner state
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options selects and configures a storage backend
type Options struct {
	Backend string
	// Path is a directory for the file backend and a database file for sqlite
	Path string
	// QuotaBytes limits the size of a single value; zero disables the check
	QuotaBytes int64
}

// Open creates the configured backend
func Open(opts Options, logger *zap.Logger) (Storage, error) {
	switch opts.Backend {
	case BackendFile:
		return NewFileStorage(opts.Path, opts.QuotaBytes, logger)
	case BackendSQLite:
		return NewSQLiteStorage(opts.Path, opts.QuotaBytes, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func checkQuota(quota int64, value string) error {
	if quota > 0 && int64(len(value)) > quota {
		return fmt.Errorf("%w: %d bytes over limit of %d", ErrQuotaExceeded, len(value), quota)
	}
	return nil
}
