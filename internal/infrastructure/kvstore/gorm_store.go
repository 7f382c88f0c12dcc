package kvstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// collectionRow is one whole-collection document
type collectionRow struct {
	Key       string    `gorm:"primaryKey;column:key;size:100"`
	Data      []byte    `gorm:"type:jsonb"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for collectionRow
func (collectionRow) TableName() string {
	return "kv_collections"
}

// counterRow is one named monotonic counter
type counterRow struct {
	Key       string    `gorm:"primaryKey;column:key;size:100"`
	Value     int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for counterRow
func (counterRow) TableName() string {
	return "kv_counters"
}

// GormStore implements Store on a relational database through GORM
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore and migrates its two tables
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&collectionRow{}, &counterRow{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// Read returns the document stored under key, or nil when absent
func (s *GormStore) Read(ctx context.Context, key string) ([]byte, error) {
	var row collectionRow
	if err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.Data, nil
}

// Write replaces the document stored under key
func (s *GormStore) Write(ctx context.Context, key string, data []byte) error {
	row := collectionRow{Key: key, Data: data}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
}

// Increment atomically increments and returns the counter under key
func (s *GormStore) Increment(ctx context.Context, key string) (int64, error) {
	var value int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := counterRow{Key: key, Value: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]any{"value": gorm.Expr("value + 1")}),
		}).Create(&row).Error; err != nil {
			return err
		}
		var current counterRow
		if err := tx.First(&current, "key = ?", key).Error; err != nil {
			return err
		}
		value = current.Value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Ensure GormStore implements Store
var _ Store = (*GormStore)(nil)
