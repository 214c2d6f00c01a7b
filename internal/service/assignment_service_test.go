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

type memoryAssignmentRepo struct {
	assignments []models.Assignment
}

func (m *memoryAssignmentRepo) List(context.Context) []models.Assignment {
	return m.assignments
}

func (m *memoryAssignmentRepo) Save(_ context.Context, assignments []models.Assignment) error {
	m.assignments = assignments
	return nil
}

func newAssignmentService(repo *memoryAssignmentRepo) AssignmentService {
	return NewAssignmentService(repo, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func validCreateRequest(title string) dto.AssignmentCreateRequest {
	return dto.AssignmentCreateRequest{
		Title:          title,
		Description:    "complete all exercises",
		Subject:        "Mathematics",
		DueDate:        "2024-03-15",
		Priority:       models.AssignmentPriorityMedium,
		EstimatedHours: 2,
	}
}

func TestCreateAssignsNextID(t *testing.T) {
	repo := &memoryAssignmentRepo{}
	svc := newAssignmentService(repo)

	created, err := svc.Create(context.Background(), validCreateRequest("First assignment"))
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, models.AssignmentStatusPending, created.Status)
}

func TestDeletedIDsAreNotReused(t *testing.T) {
	repo := &memoryAssignmentRepo{assignments: []models.Assignment{
		{ID: 1, Title: "one"}, {ID: 2, Title: "two"}, {ID: 3, Title: "three"},
	}}
	svc := newAssignmentService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 2))
	require.Len(t, repo.assignments, 2)

	created, err := svc.Create(ctx, validCreateRequest("Fourth assignment"))
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
}

func TestCreateValidatesPayload(t *testing.T) {
	svc := newAssignmentService(&memoryAssignmentRepo{})

	cases := []dto.AssignmentCreateRequest{
		{},
		{Title: "ok", Description: "long enough", Subject: "Math", DueDate: "not-a-date", Priority: "high", EstimatedHours: 1},
		{Title: "ok title", Description: "long enough", Subject: "Math", DueDate: "2024-03-15", Priority: "urgent", EstimatedHours: 1},
		{Title: "ok title", Description: "long enough", Subject: "Math", DueDate: "2024-03-15", Priority: "high", EstimatedHours: 0.25},
	}

	for i, payload := range cases {
		_, err := svc.Create(context.Background(), payload)
		assert.Error(t, err, "case %d", i)
	}
}

func TestCreateSanitizesMarkup(t *testing.T) {
	repo := &memoryAssignmentRepo{}
	svc := newAssignmentService(repo)

	payload := validCreateRequest("Essay <script>alert(1)</script> draft")
	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.NotContains(t, created.Title, "<script>")
}

func TestUpdateTogglesStatus(t *testing.T) {
	repo := &memoryAssignmentRepo{assignments: []models.Assignment{
		{ID: 1, Title: "one", Status: models.AssignmentStatusPending},
	}}
	svc := newAssignmentService(repo)

	status := models.AssignmentStatusCompleted
	updated, err := svc.Update(context.Background(), 1, dto.AssignmentUpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusCompleted, updated.Status)
	assert.Equal(t, models.AssignmentStatusCompleted, repo.assignments[0].Status)
}

func TestUpdateUnknownAssignment(t *testing.T) {
	svc := newAssignmentService(&memoryAssignmentRepo{})

	status := models.AssignmentStatusCompleted
	_, err := svc.Update(context.Background(), 42, dto.AssignmentUpdateRequest{Status: &status})
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestDeleteUnknownAssignment(t *testing.T) {
	svc := newAssignmentService(&memoryAssignmentRepo{})
	assert.ErrorIs(t, svc.Delete(context.Background(), 42), ErrAssignmentNotFound)
}

func TestListReportsCompletionRate(t *testing.T) {
	repo := &memoryAssignmentRepo{assignments: []models.Assignment{
		{ID: 1, Status: models.AssignmentStatusCompleted},
		{ID: 2, Status: models.AssignmentStatusCompleted},
		{ID: 3, Status: models.AssignmentStatusPending},
		{ID: 4, Status: models.AssignmentStatusInProgress},
	}}
	svc := newAssignmentService(repo)

	response := svc.List(context.Background())
	assert.Equal(t, 50, response.CompletionRate)
	assert.Len(t, response.Assignments, 4)
}
