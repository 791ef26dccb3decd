package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// StorageEntry is one row of the key-value table
type StorageEntry struct {
	EntryKey  string `gorm:"column:entry_key;primaryKey"`
	Payload   string `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}

// SQLiteStorage keeps entries in a SQLite database through GORM
type SQLiteStorage struct {
	db     *gorm.DB
	quota  int64
	logger *zap.Logger
}

// NewSQLiteStorage opens the database file and migrates the entries table
func NewSQLiteStorage(path string, quota int64, logger *zap.Logger) (*SQLiteStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrUnavailable, err)
	}

	return NewSQLiteStorageFromDB(db, quota, logger)
}

// NewSQLiteStorageFromDB wraps an open connection
func NewSQLiteStorageFromDB(db *gorm.DB, quota int64, logger *zap.Logger) (*SQLiteStorage, error) {
	if err := db.AutoMigrate(&StorageEntry{}); err != nil {
		return nil, fmt.Errorf("%w: failed to migrate storage table: %v", ErrUnavailable, err)
	}

	return &SQLiteStorage{db: db, quota: quota, logger: logger}, nil
}

// Get returns the payload stored under key
func (s *SQLiteStorage) Get(ctx context.Context, key string) (string, error) {
	var entry StorageEntry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: failed to query entry: %v", ErrUnavailable, err)
	}
	return entry.Payload, nil
}

// Set upserts the payload under key
func (s *SQLiteStorage) Set(ctx context.Context, key, value string) error {
	if err := checkQuota(s.quota, value); err != nil {
		return err
	}

	entry := StorageEntry{EntryKey: key, Payload: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("%w: failed to write entry: %v", ErrUnavailable, err)
	}

	s.logger.Debug("Storage entry written",
		zap.String("key", key),
		zap.Int("bytes", len(value)))

	return nil
}

// Close closes the underlying connection
func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
