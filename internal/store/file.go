package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	filePermissions = 0644
	fileSuffix      = ".json"
	tmpSuffix       = ".tmp"
)

// FileStorage keeps one file per key inside a directory
type FileStorage struct {
	dir    string
	quota  int64
	logger *zap.Logger
}

// NewFileStorage creates the directory if needed
func NewFileStorage(dir string, quota int64, logger *zap.Logger) (*FileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty storage directory", ErrUnavailable)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create storage directory: %v", ErrUnavailable, err)
	}

	return &FileStorage{
		dir:    dir,
		quota:  quota,
		logger: logger,
	}, nil
}

// Get reads the file for key
func (fs *FileStorage) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := fs.path(key)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: failed to read %s: %v", ErrUnavailable, path, err)
	}

	return string(data), nil
}

// Set writes value to a temp file and renames it over the file for key
func (fs *FileStorage) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkQuota(fs.quota, value); err != nil {
		return err
	}

	path, err := fs.path(key)
	if err != nil {
		return err
	}

	tmpFile := path + tmpSuffix
	if err := os.WriteFile(tmpFile, []byte(value), filePermissions); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", ErrUnavailable, tmpFile, err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		if rmErr := os.Remove(tmpFile); rmErr != nil {
			fs.logger.Warn("Failed to remove temp file", zap.String("file", tmpFile), zap.Error(rmErr))
		}
		return fmt.Errorf("%w: failed to replace %s: %v", ErrUnavailable, path, err)
	}

	fs.logger.Debug("Storage entry written",
		zap.String("key", key),
		zap.Int("bytes", len(value)))

	return nil
}

// Close is a no-op
func (fs *FileStorage) Close() error {
	return nil
}

func (fs *FileStorage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: invalid key %q", ErrUnavailable, key)
	}
	return filepath.Join(fs.dir, key+fileSuffix), nil
}
