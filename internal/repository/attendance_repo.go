package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/seed"
	"github.com/studypulse/studypulse-api/internal/store"
)

// AttendanceRepository persists per-subject attendance records.
type AttendanceRepository interface {
	List(ctx context.Context) []models.AttendanceRecord
	Save(ctx context.Context, records []models.AttendanceRecord) error
}

type attendanceRepository struct {
	collection *store.Collection[models.AttendanceRecord]
}

// NewAttendanceRepository binds the attendance slot.
func NewAttendanceRepository(slots store.SlotStore, bus store.Publisher, logger zerolog.Logger) AttendanceRepository {
	return &attendanceRepository{
		collection: store.NewCollection(slots, store.KeyAttendance, seed.Attendance(), bus, logger),
	}
}

func (r *attendanceRepository) List(ctx context.Context) []models.AttendanceRecord {
	return r.collection.Load(ctx)
}

func (r *attendanceRepository) Save(ctx context.Context, records []models.AttendanceRecord) error {
	return r.collection.Save(ctx, records)
}
