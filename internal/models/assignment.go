package models

import "time"

// Assignment status values.
const (
	AssignmentStatusPending    = "pending"
	AssignmentStatusInProgress = "in-progress"
	AssignmentStatusCompleted  = "completed"
)

// Assignment priority values.
const (
	AssignmentPriorityHigh   = "high"
	AssignmentPriorityMedium = "medium"
	AssignmentPriorityLow    = "low"
)

// Assignment is a piece of coursework tracked by the student. Identifiers are
// assigned as max(existing)+1 within the owning collection; deleted ids are
// never reused.
type Assignment struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Subject        string  `json:"subject"`
	DueDate        string  `json:"dueDate"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimatedHours"`
}

// IsPastDue reports whether the due date lies before the reference day.
// Due dates are calendar dates without a time component.
func (a Assignment) IsPastDue(reference time.Time) bool {
	due, err := time.Parse("2006-01-02", a.DueDate)
	if err != nil {
		return false
	}

	return due.Before(reference.Truncate(24 * time.Hour))
}

// ValidAssignmentStatus reports whether s is one of the three known states.
func ValidAssignmentStatus(s string) bool {
	switch s {
	case AssignmentStatusPending, AssignmentStatusInProgress, AssignmentStatusCompleted:
		return true
	default:
		return false
	}
}

// ValidAssignmentPriority reports whether p is one of the three known levels.
func ValidAssignmentPriority(p string) bool {
	switch p {
	case AssignmentPriorityHigh, AssignmentPriorityMedium, AssignmentPriorityLow:
		return true
	default:
		return false
	}
}
