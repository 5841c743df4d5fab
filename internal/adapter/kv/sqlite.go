package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"user-profiles/pkg/logger"
)

// EntrySchema represents the database schema for the kv_entries table.
type EntrySchema struct {
	Key       string `gorm:"primaryKey"` // Substrate key
	Value     string `gorm:"not null"`   // Raw stored value
	UpdatedAt time.Time
}

// TableName specifies the table name for the EntrySchema model.
func (EntrySchema) TableName() string {
	return "kv_entries"
}

// SQLite implements Store with an embedded SQLite database holding a single
// key-value table.
type SQLite struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewSQLite opens (or creates) the database at path and migrates the schema.
func NewSQLite(path string, log *zap.Logger) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&EntrySchema{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv schema: %w", err)
	}

	log.Info("sqlite storage opened", zap.String("path", path))
	return &SQLite{db: db, log: log}, nil
}

// Get retrieves the value for key.
func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var entry EntrySchema
	if err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		s.log.Error("failed to get key from sqlite", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return entry.Value, nil
}

// Set stores value under key, overwriting any previous value.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	entry := EntrySchema{Key: key, Value: value, UpdatedAt: time.Now()}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&entry).Error
	if err != nil {
		s.log.Error("failed to set key in sqlite", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&EntrySchema{}, "key = ?", key).Error; err != nil {
		s.log.Error("failed to delete key from sqlite", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
