package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/seed"
	"github.com/studypulse/studypulse-api/internal/store"
)

// StudyRepository persists planned study sessions and the study history.
type StudyRepository interface {
	Sessions(ctx context.Context) []models.StudySession
	SaveSessions(ctx context.Context, sessions []models.StudySession) error
	History(ctx context.Context) []models.StudyHistoryEntry
	SaveHistory(ctx context.Context, history []models.StudyHistoryEntry) error
}

type studyRepository struct {
	sessions *store.Collection[models.StudySession]
	history  *store.Collection[models.StudyHistoryEntry]
}

// NewStudyRepository binds the planner slots.
func NewStudyRepository(slots store.SlotStore, bus store.Publisher, logger zerolog.Logger) StudyRepository {
	return &studyRepository{
		sessions: store.NewCollection(slots, store.KeyStudySessions, seed.StudySessions(), bus, logger),
		history:  store.NewCollection(slots, store.KeyStudyHistory, seed.StudyHistory(), bus, logger),
	}
}

func (r *studyRepository) Sessions(ctx context.Context) []models.StudySession {
	return r.sessions.Load(ctx)
}

func (r *studyRepository) SaveSessions(ctx context.Context, sessions []models.StudySession) error {
	return r.sessions.Save(ctx, sessions)
}

func (r *studyRepository) History(ctx context.Context) []models.StudyHistoryEntry {
	return r.history.Load(ctx)
}

func (r *studyRepository) SaveHistory(ctx context.Context, history []models.StudyHistoryEntry) error {
	return r.history.Save(ctx, history)
}
