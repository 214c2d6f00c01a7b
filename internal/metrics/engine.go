// Package metrics derives aggregate academic figures from raw collections.
// Every function is pure: collections in, numbers out, no stored state. All
// pages derive their displayed values through this package so identical
// inputs always render identical numbers.
package metrics

import (
	"math"
	"sort"

	"github.com/studypulse/studypulse-api/internal/models"
)

// Trend labels for the GPA delta display.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// CurrentGPA flattens every subject's grade list to GPA points and returns
// the arithmetic mean. Returns 0 when no grades exist anywhere. Grades are
// not weighted by credit hours or recency.
func CurrentGPA(subjects []models.Subject) float64 {
	var total float64
	var count int

	for _, subject := range subjects {
		for _, entry := range subject.Grades {
			points, ok := entry.Grade.Points()
			if !ok {
				continue
			}
			total += points
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return total / float64(count)
}

// PreviousGPA returns the second-to-last point's gpa, or 0 when fewer than
// two points exist.
func PreviousGPA(points []models.HistoricalGPAPoint) float64 {
	if len(points) < 2 {
		return 0
	}

	return points[len(points)-2].GPA
}

// GPADelta is current minus previous; its sign drives the trend display.
func GPADelta(subjects []models.Subject, points []models.HistoricalGPAPoint) float64 {
	return CurrentGPA(subjects) - PreviousGPA(points)
}

// Trend maps a GPA delta onto the up/down/stable label. Exactly zero is
// stable.
func Trend(delta float64) string {
	switch {
	case delta > 0:
		return TrendUp
	case delta < 0:
		return TrendDown
	default:
		return TrendStable
	}
}

// AttendancePercentage returns attended/totalClasses as a percentage.
// A record with zero total classes yields 0 rather than a non-finite value.
func AttendancePercentage(record models.AttendanceRecord) float64 {
	if record.TotalClasses == 0 {
		return 0
	}

	return float64(record.Attended) / float64(record.TotalClasses) * 100
}

// AttendanceBreakdown holds overall attendance shares, each as a percentage
// of total classes across all subjects combined.
type AttendanceBreakdown struct {
	Present float64 `json:"present"`
	Late    float64 `json:"late"`
	Absent  float64 `json:"absent"`
}

// AggregateAttendance sums counts across all records and expresses each
// status as a share of the combined class total.
func AggregateAttendance(records []models.AttendanceRecord) AttendanceBreakdown {
	var totalClasses, attended, late, absent int
	for _, record := range records {
		totalClasses += record.TotalClasses
		attended += record.Attended
		late += record.Late
		absent += record.Absent
	}

	if totalClasses == 0 {
		return AttendanceBreakdown{}
	}

	return AttendanceBreakdown{
		Present: float64(attended) / float64(totalClasses) * 100,
		Late:    float64(late) / float64(totalClasses) * 100,
		Absent:  float64(absent) / float64(totalClasses) * 100,
	}
}

// CompletionRate is the share of completed assignments as a whole percentage,
// rounded to the nearest integer. An empty collection yields 0.
func CompletionRate(assignments []models.Assignment) int {
	if len(assignments) == 0 {
		return 0
	}

	var completed int
	for _, assignment := range assignments {
		if assignment.Status == models.AssignmentStatusCompleted {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(len(assignments)) * 100))
}

// SemesterGrades pairs the most recent and the preceding grade for a subject.
// Either pointer is nil when no matching entry exists.
type SemesterGrades struct {
	Current  *models.GradeEntry
	Previous *models.GradeEntry
}

// CurrentVsPrevious sorts a subject's grade entries by semester label
// descending and returns the first two. The comparison is plain string
// ordering on labels like "Fall 2023"; it is not calendar-aware.
func CurrentVsPrevious(subject models.Subject) SemesterGrades {
	if len(subject.Grades) == 0 {
		return SemesterGrades{}
	}

	sorted := make([]models.GradeEntry, len(subject.Grades))
	copy(sorted, subject.Grades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Semester > sorted[j].Semester
	})

	result := SemesterGrades{Current: &sorted[0]}
	if len(sorted) > 1 {
		result.Previous = &sorted[1]
	}

	return result
}

// TotalStudyMinutes sums duration across all history entries.
func TotalStudyMinutes(history []models.StudyHistoryEntry) int {
	var total int
	for _, entry := range history {
		total += entry.Duration
	}

	return total
}
