package dto

import "github.com/studypulse/studypulse-api/internal/metrics"

// DashboardResponse aggregates the headline figures for the overview page.
type DashboardResponse struct {
	GPA           GPASummary                  `json:"gpa"`
	Attendance    AttendanceSummary           `json:"attendance"`
	Study         StudySummary                `json:"study"`
	Assignments   AssignmentSummary           `json:"assignments"`
	Breakdown     metrics.AttendanceBreakdown `json:"attendance_breakdown"`
	HistoricalGPA []HistoricalGPAPoint        `json:"historical_gpa"`
	PendingTitles []string                    `json:"pending_assignments"`
}

// GPASummary carries the current GPA and its movement since the previous
// period.
type GPASummary struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Delta    float64 `json:"delta"`
	Trend    string  `json:"trend"`
}

// AttendanceSummary is the overall attendance rate with its risk tier.
type AttendanceSummary struct {
	Percentage float64 `json:"percentage"`
	Risk       string  `json:"risk"`
}

// StudySummary totals recorded study time.
type StudySummary struct {
	TotalMinutes int     `json:"total_minutes"`
	WeeklyHours  float64 `json:"weekly_hours"`
}

// AssignmentSummary captures completion progress.
type AssignmentSummary struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completion_rate"`
}

// HistoricalGPAPoint mirrors one point of the GPA-over-time series.
type HistoricalGPAPoint struct {
	Name string  `json:"name"`
	GPA  float64 `json:"gpa"`
}
