package dto

import "github.com/studypulse/studypulse-api/internal/models"

// GradeAddRequest appends one letter grade to a subject. The semester label
// is free-form ("Fall 2023", "Spring 2024").
type GradeAddRequest struct {
	SubjectID int    `json:"subject_id" validate:"required,min=1"`
	Grade     string `json:"grade" validate:"required"`
	Semester  string `json:"semester" validate:"required,min=3"`
}

// SemesterGrade is one resolved grade with its display percentage.
type SemesterGrade struct {
	Grade    string  `json:"grade"`
	Semester string  `json:"semester"`
	Points   float64 `json:"points"`
	Percent  float64 `json:"percent"`
}

// SubjectResponse is a subject with its derived current/previous grades.
type SubjectResponse struct {
	ID       int                 `json:"id"`
	Name     string              `json:"name"`
	Grades   []models.GradeEntry `json:"grades"`
	Current  *SemesterGrade      `json:"current"`
	Previous *SemesterGrade      `json:"previous"`
}

// GradeOverviewResponse is the grades page payload.
type GradeOverviewResponse struct {
	Subjects      []SubjectResponse    `json:"subjects"`
	CurrentGPA    float64              `json:"current_gpa"`
	PreviousGPA   float64              `json:"previous_gpa"`
	HistoricalGPA []HistoricalGPAPoint `json:"historical_gpa"`
}
