package dto

import "github.com/studypulse/studypulse-api/internal/models"

// AssignmentCreateRequest describes the payload for creating an assignment.
type AssignmentCreateRequest struct {
	Title          string  `json:"title" validate:"required,min=3"`
	Description    string  `json:"description" validate:"required,min=5"`
	Subject        string  `json:"subject" validate:"required"`
	DueDate        string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	Priority       string  `json:"priority" validate:"required,oneof=high medium low"`
	EstimatedHours float64 `json:"estimated_hours" validate:"required,min=0.5"`
}

// AssignmentUpdateRequest describes a partial in-place edit. Nil fields are
// left untouched.
type AssignmentUpdateRequest struct {
	Title          *string  `json:"title" validate:"omitempty,min=3"`
	Description    *string  `json:"description" validate:"omitempty,min=5"`
	Subject        *string  `json:"subject" validate:"omitempty,min=1"`
	DueDate        *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status         *string  `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority       *string  `json:"priority" validate:"omitempty,oneof=high medium low"`
	EstimatedHours *float64 `json:"estimated_hours" validate:"omitempty,min=0.5"`
}

// AssignmentListResponse pairs the collection with its completion rate.
type AssignmentListResponse struct {
	Assignments    []models.Assignment `json:"assignments"`
	CompletionRate int                 `json:"completion_rate"`
}
