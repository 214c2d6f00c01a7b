package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/seed"
	"github.com/studypulse/studypulse-api/internal/store"
)

// AssignmentRepository persists the assignment collection. Every save is a
// full-collection overwrite.
type AssignmentRepository interface {
	List(ctx context.Context) []models.Assignment
	Save(ctx context.Context, assignments []models.Assignment) error
}

type assignmentRepository struct {
	collection *store.Collection[models.Assignment]
}

// NewAssignmentRepository binds the assignment slot.
func NewAssignmentRepository(slots store.SlotStore, bus store.Publisher, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		collection: store.NewCollection(slots, store.KeyAssignments, seed.Assignments(), bus, logger),
	}
}

func (r *assignmentRepository) List(ctx context.Context) []models.Assignment {
	return r.collection.Load(ctx)
}

func (r *assignmentRepository) Save(ctx context.Context, assignments []models.Assignment) error {
	return r.collection.Save(ctx, assignments)
}
