// Package repository exposes typed load/save access to each persisted
// collection. Repositories are injected into services; nothing reads a slot
// through an ambient lookup.
package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/seed"
	"github.com/studypulse/studypulse-api/internal/store"
)

// GradeRepository persists subjects and the historical GPA series.
type GradeRepository interface {
	Subjects(ctx context.Context) []models.Subject
	SaveSubjects(ctx context.Context, subjects []models.Subject) error
	HistoricalGPA(ctx context.Context) []models.HistoricalGPAPoint
	SaveHistoricalGPA(ctx context.Context, points []models.HistoricalGPAPoint) error
}

type gradeRepository struct {
	subjects   *store.Collection[models.Subject]
	historical *store.Collection[models.HistoricalGPAPoint]
}

// NewGradeRepository binds the subject and GPA-series slots.
func NewGradeRepository(slots store.SlotStore, bus store.Publisher, logger zerolog.Logger) GradeRepository {
	return &gradeRepository{
		subjects:   store.NewCollection(slots, store.KeySubjects, seed.Subjects(), bus, logger),
		historical: store.NewCollection(slots, store.KeyHistoricalGPA, seed.HistoricalGPA(), bus, logger),
	}
}

func (r *gradeRepository) Subjects(ctx context.Context) []models.Subject {
	return r.subjects.Load(ctx)
}

func (r *gradeRepository) SaveSubjects(ctx context.Context, subjects []models.Subject) error {
	return r.subjects.Save(ctx, subjects)
}

func (r *gradeRepository) HistoricalGPA(ctx context.Context) []models.HistoricalGPAPoint {
	return r.historical.Load(ctx)
}

func (r *gradeRepository) SaveHistoricalGPA(ctx context.Context, points []models.HistoricalGPAPoint) error {
	return r.historical.Save(ctx, points)
}
