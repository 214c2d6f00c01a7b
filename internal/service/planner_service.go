package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/metrics"
	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/repository"
)

var (
	// ErrSessionNotFound indicates the requested study session does not exist.
	ErrSessionNotFound = errors.New("study session not found")
	// ErrSessionAlreadyCompleted indicates the session was closed before.
	ErrSessionAlreadyCompleted = errors.New("study session already completed")
)

// PlannerService exposes the study planner use cases.
type PlannerService interface {
	Overview(ctx context.Context) dto.PlannerResponse
	CreateSession(ctx context.Context, payload dto.SessionCreateRequest) (models.StudySession, error)
	CompleteSession(ctx context.Context, id int, payload dto.SessionCompleteRequest) (models.StudyHistoryEntry, error)
	DeleteSession(ctx context.Context, id int) error
}

type plannerService struct {
	repo      repository.StudyRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewPlannerService builds the planner service.
func NewPlannerService(repo repository.StudyRepository, validate *validator.Validate, logger zerolog.Logger) PlannerService {
	return &plannerService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "planner_service").Logger(),
	}
}

func (s *plannerService) Overview(ctx context.Context) dto.PlannerResponse {
	history := s.repo.History(ctx)

	return dto.PlannerResponse{
		Sessions:     s.repo.Sessions(ctx),
		History:      history,
		TotalMinutes: metrics.TotalStudyMinutes(history),
	}
}

func (s *plannerService) CreateSession(ctx context.Context, payload dto.SessionCreateRequest) (models.StudySession, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.StudySession{}, err
	}

	sessions := s.repo.Sessions(ctx)

	session := models.StudySession{
		ID:        nextSessionID(sessions),
		Subject:   payload.Subject,
		Date:      payload.Date,
		StartTime: payload.StartTime,
		Duration:  payload.Duration,
		Topic:     s.sanitizer.Sanitize(payload.Topic),
		Completed: false,
	}

	sessions = append(sessions, session)
	if err := s.repo.SaveSessions(ctx, sessions); err != nil {
		return models.StudySession{}, err
	}

	s.logger.Info().Int("session_id", session.ID).Msg("study session scheduled")

	return session, nil
}

// CompleteSession marks the session done and appends a history entry. The
// duration is the elapsed timer time in whole minutes (at least one), and
// productivity defaults to high.
func (s *plannerService) CompleteSession(ctx context.Context, id int, payload dto.SessionCompleteRequest) (models.StudyHistoryEntry, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.StudyHistoryEntry{}, err
	}

	sessions := s.repo.Sessions(ctx)

	index := -1
	for i := range sessions {
		if sessions[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return models.StudyHistoryEntry{}, ErrSessionNotFound
	}
	if sessions[index].Completed {
		return models.StudyHistoryEntry{}, ErrSessionAlreadyCompleted
	}

	sessions[index].Completed = true
	if err := s.repo.SaveSessions(ctx, sessions); err != nil {
		return models.StudyHistoryEntry{}, err
	}

	minutes := payload.ElapsedSeconds / 60
	if minutes < 1 {
		minutes = 1
	}

	history := s.repo.History(ctx)
	entry := models.StudyHistoryEntry{
		ID:           nextHistoryID(history),
		Subject:      sessions[index].Subject,
		Date:         sessions[index].Date,
		Duration:     minutes,
		Productivity: models.ProductivityHigh,
	}

	history = append(history, entry)
	if err := s.repo.SaveHistory(ctx, history); err != nil {
		return models.StudyHistoryEntry{}, err
	}

	s.logger.Info().
		Int("session_id", id).
		Int("minutes", minutes).
		Msg("study session completed")

	return entry, nil
}

func (s *plannerService) DeleteSession(ctx context.Context, id int) error {
	sessions := s.repo.Sessions(ctx)

	remaining := make([]models.StudySession, 0, len(sessions))
	for _, session := range sessions {
		if session.ID != id {
			remaining = append(remaining, session)
		}
	}

	if len(remaining) == len(sessions) {
		return ErrSessionNotFound
	}

	return s.repo.SaveSessions(ctx, remaining)
}

func nextSessionID(sessions []models.StudySession) int {
	max := 0
	for _, session := range sessions {
		if session.ID > max {
			max = session.ID
		}
	}

	return max + 1
}

func nextHistoryID(history []models.StudyHistoryEntry) int {
	max := 0
	for _, entry := range history {
		if entry.ID > max {
			max = entry.ID
		}
	}

	return max + 1
}
