package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/models"
)

type memoryStudyRepo struct {
	sessions []models.StudySession
	history  []models.StudyHistoryEntry
}

func (m *memoryStudyRepo) Sessions(context.Context) []models.StudySession {
	return m.sessions
}

func (m *memoryStudyRepo) SaveSessions(_ context.Context, sessions []models.StudySession) error {
	m.sessions = sessions
	return nil
}

func (m *memoryStudyRepo) History(context.Context) []models.StudyHistoryEntry {
	return m.history
}

func (m *memoryStudyRepo) SaveHistory(_ context.Context, history []models.StudyHistoryEntry) error {
	m.history = history
	return nil
}

func newPlannerService(repo *memoryStudyRepo) PlannerService {
	return NewPlannerService(repo, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func TestCreateSessionAssignsID(t *testing.T) {
	repo := &memoryStudyRepo{}
	svc := newPlannerService(repo)

	session, err := svc.CreateSession(context.Background(), dto.SessionCreateRequest{
		Subject:   "Mathematics",
		Date:      "2024-02-10",
		StartTime: "18:00",
		Duration:  45,
		Topic:     "Calculus - Derivatives",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, session.ID)
	assert.False(t, session.Completed)
	require.Len(t, repo.sessions, 1)
}

func TestCompleteSessionRecordsHistory(t *testing.T) {
	repo := &memoryStudyRepo{
		sessions: []models.StudySession{
			{ID: 3, Subject: "Physics", Date: "2024-02-11", Duration: 60, Topic: "Fluid Mechanics"},
		},
		history: []models.StudyHistoryEntry{{ID: 5, Subject: "History", Duration: 30}},
	}
	svc := newPlannerService(repo)

	entry, err := svc.CompleteSession(context.Background(), 3, dto.SessionCompleteRequest{ElapsedSeconds: 1500})
	require.NoError(t, err)

	// 1500 elapsed seconds is 25 whole minutes.
	assert.Equal(t, 25, entry.Duration)
	assert.Equal(t, models.ProductivityHigh, entry.Productivity)
	assert.Equal(t, "Physics", entry.Subject)
	assert.Equal(t, 6, entry.ID)

	assert.True(t, repo.sessions[0].Completed)
	require.Len(t, repo.history, 2)
}

func TestCompleteSessionShortTimerCountsOneMinute(t *testing.T) {
	repo := &memoryStudyRepo{sessions: []models.StudySession{{ID: 1, Subject: "Biology"}}}
	svc := newPlannerService(repo)

	entry, err := svc.CompleteSession(context.Background(), 1, dto.SessionCompleteRequest{ElapsedSeconds: 40})
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Duration)
}

func TestCompleteSessionTwiceFails(t *testing.T) {
	repo := &memoryStudyRepo{sessions: []models.StudySession{{ID: 1, Subject: "Biology"}}}
	svc := newPlannerService(repo)
	ctx := context.Background()

	_, err := svc.CompleteSession(ctx, 1, dto.SessionCompleteRequest{ElapsedSeconds: 60})
	require.NoError(t, err)

	_, err = svc.CompleteSession(ctx, 1, dto.SessionCompleteRequest{ElapsedSeconds: 60})
	assert.ErrorIs(t, err, ErrSessionAlreadyCompleted)
	assert.Len(t, repo.history, 1)
}

func TestCompleteUnknownSession(t *testing.T) {
	svc := newPlannerService(&memoryStudyRepo{})

	_, err := svc.CompleteSession(context.Background(), 9, dto.SessionCompleteRequest{ElapsedSeconds: 60})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	repo := &memoryStudyRepo{sessions: []models.StudySession{{ID: 1}, {ID: 2}}}
	svc := newPlannerService(repo)

	require.NoError(t, svc.DeleteSession(context.Background(), 1))
	require.Len(t, repo.sessions, 1)
	assert.Equal(t, 2, repo.sessions[0].ID)

	assert.ErrorIs(t, svc.DeleteSession(context.Background(), 1), ErrSessionNotFound)
}

func TestPlannerOverviewTotalsHistory(t *testing.T) {
	repo := &memoryStudyRepo{history: []models.StudyHistoryEntry{
		{ID: 1, Duration: 120}, {ID: 2, Duration: 45},
	}}
	svc := newPlannerService(repo)

	overview := svc.Overview(context.Background())
	assert.Equal(t, 165, overview.TotalMinutes)
}
