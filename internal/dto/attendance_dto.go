package dto

import "github.com/studypulse/studypulse-api/internal/metrics"

// AttendanceMarkRequest records one class outcome against a subject.
type AttendanceMarkRequest struct {
	SubjectID int    `json:"subject_id" validate:"required,min=1"`
	Status    string `json:"status" validate:"required,oneof=present late absent"`
}

// AttendanceRecordResponse is one subject's attendance with derived figures.
type AttendanceRecordResponse struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	TotalClasses int     `json:"totalClasses"`
	Attended     int     `json:"attended"`
	Late         int     `json:"late"`
	Absent       int     `json:"absent"`
	Percentage   float64 `json:"percentage"`
	Risk         string  `json:"risk"`
}

// AttendanceOverviewResponse is the attendance page payload.
type AttendanceOverviewResponse struct {
	Records   []AttendanceRecordResponse  `json:"records"`
	Breakdown metrics.AttendanceBreakdown `json:"breakdown"`
	AtRisk    []string                    `json:"at_risk_subjects"`
}
