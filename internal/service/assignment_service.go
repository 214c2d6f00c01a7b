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

// ErrAssignmentNotFound indicates the requested assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentService exposes assignment tracking use cases.
type AssignmentService interface {
	List(ctx context.Context) dto.AssignmentListResponse
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (models.Assignment, error)
	Update(ctx context.Context, id int, payload dto.AssignmentUpdateRequest) (models.Assignment, error)
	Delete(ctx context.Context, id int) error
}

type assignmentService struct {
	repo      repository.AssignmentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewAssignmentService builds the assignment service.
func NewAssignmentService(repo repository.AssignmentRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) List(ctx context.Context) dto.AssignmentListResponse {
	assignments := s.repo.List(ctx)

	return dto.AssignmentListResponse{
		Assignments:    assignments,
		CompletionRate: metrics.CompletionRate(assignments),
	}
}

// Create assigns id max(existing)+1, or 1 when the collection is empty.
// Deleted ids are never reused because the maximum is taken over the current
// collection, not a counter.
func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assignment{}, err
	}

	assignments := s.repo.List(ctx)

	assignment := models.Assignment{
		ID:             nextAssignmentID(assignments),
		Title:          s.sanitizer.Sanitize(payload.Title),
		Description:    s.sanitizer.Sanitize(payload.Description),
		Subject:        payload.Subject,
		DueDate:        payload.DueDate,
		Status:         models.AssignmentStatusPending,
		Priority:       payload.Priority,
		EstimatedHours: payload.EstimatedHours,
	}

	assignments = append(assignments, assignment)
	if err := s.repo.Save(ctx, assignments); err != nil {
		return models.Assignment{}, err
	}

	s.logger.Info().Int("assignment_id", assignment.ID).Msg("assignment created")

	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, id int, payload dto.AssignmentUpdateRequest) (models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assignment{}, err
	}

	assignments := s.repo.List(ctx)

	index := -1
	for i := range assignments {
		if assignments[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return models.Assignment{}, ErrAssignmentNotFound
	}

	assignment := &assignments[index]
	if payload.Title != nil {
		assignment.Title = s.sanitizer.Sanitize(*payload.Title)
	}
	if payload.Description != nil {
		assignment.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.Subject != nil {
		assignment.Subject = *payload.Subject
	}
	if payload.DueDate != nil {
		assignment.DueDate = *payload.DueDate
	}
	if payload.Status != nil {
		assignment.Status = *payload.Status
	}
	if payload.Priority != nil {
		assignment.Priority = *payload.Priority
	}
	if payload.EstimatedHours != nil {
		assignment.EstimatedHours = *payload.EstimatedHours
	}

	if err := s.repo.Save(ctx, assignments); err != nil {
		return models.Assignment{}, err
	}

	return *assignment, nil
}

// Delete removes the assignment by id filter and overwrites the collection.
func (s *assignmentService) Delete(ctx context.Context, id int) error {
	assignments := s.repo.List(ctx)

	remaining := make([]models.Assignment, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.ID != id {
			remaining = append(remaining, assignment)
		}
	}

	if len(remaining) == len(assignments) {
		return ErrAssignmentNotFound
	}

	if err := s.repo.Save(ctx, remaining); err != nil {
		return err
	}

	s.logger.Info().Int("assignment_id", id).Msg("assignment deleted")

	return nil
}

func nextAssignmentID(assignments []models.Assignment) int {
	max := 0
	for _, assignment := range assignments {
		if assignment.ID > max {
			max = assignment.ID
		}
	}

	return max + 1
}
