package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is one named string value. The whole store is three rows: the games
// collection, the sessions collection, and the theme preference.
type Blob struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

// Read returns the value stored under key. A missing key is not an error:
// found reports false and the caller decides what empty means.
func (s *DB) Read(ctx context.Context, key string) (string, bool, error) {
	var blob Blob
	err := s.SQL.WithContext(ctx).First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.log.Function("Read").Err("failed to read blob", err, "key", key)
	}

	return blob.Value, true, nil
}

// Write stores value under key, replacing any previous value. Errors (for
// example a full disk) are surfaced to the caller; nothing is retried.
func (s *DB) Write(ctx context.Context, key string, value string) error {
	err := s.SQL.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&Blob{Key: key, Value: value}).Error
	if err != nil {
		return s.log.Function("Write").Err("failed to write blob", err, "key", key)
	}

	return nil
}
