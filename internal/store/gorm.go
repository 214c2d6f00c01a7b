package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is the durable row backing one collection.
type Slot struct {
	Key       string         `gorm:"primaryKey;size:128"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// GormStore keeps slot payloads in a relational table, for deployments that
// want durability over a bare cache.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an existing GORM connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var slot Slot
	if err := s.db.WithContext(ctx).First(&slot, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotMissing
		}
		return nil, err
	}

	return []byte(slot.Payload), nil
}

func (s *GormStore) Set(ctx context.Context, key string, payload []byte) error {
	slot := Slot{Key: key, Payload: datatypes.JSON(payload)}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&slot).Error
}
