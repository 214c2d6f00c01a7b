package models

import "github.com/studypulse/studypulse-api/internal/grades"

// GradeEntry records one awarded letter grade for a semester.
type GradeEntry struct {
	Grade    grades.Letter `json:"grade"`
	Semester string        `json:"semester"`
}

// Subject is a course a student is enrolled in, together with every grade
// awarded so far. Entries are append-only; current/previous are derived by
// sorting semester labels, not by insertion order.
type Subject struct {
	ID     int          `json:"id"`
	Name   string       `json:"name"`
	Grades []GradeEntry `json:"grades"`
}

// HistoricalGPAPoint is one point on the GPA-over-time series. A point is
// appended whenever a grade is added anywhere; period names may repeat.
type HistoricalGPAPoint struct {
	Name string  `json:"name"`
	GPA  float64 `json:"gpa"`
}
