package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studypulse/studypulse-api/internal/grades"
	"github.com/studypulse/studypulse-api/internal/models"
)

func TestCurrentGPA(t *testing.T) {
	t.Run("empty collections yield zero", func(t *testing.T) {
		assert.Zero(t, CurrentGPA(nil))
		assert.Zero(t, CurrentGPA([]models.Subject{{ID: 1, Name: "Operating Systems"}}))
	})

	t.Run("single grade", func(t *testing.T) {
		subjects := []models.Subject{
			{ID: 1, Name: "Data Structures & Algorithms", Grades: []models.GradeEntry{
				{Grade: grades.LetterA, Semester: "Fall 2023"},
			}},
		}
		assert.InDelta(t, 3.7, CurrentGPA(subjects), 1e-9)
	})

	t.Run("mean across subjects", func(t *testing.T) {
		subjects := []models.Subject{
			{ID: 1, Grades: []models.GradeEntry{
				{Grade: grades.LetterS, Semester: "Fall 2023"},
				{Grade: grades.LetterB, Semester: "Spring 2024"},
			}},
			{ID: 2, Grades: []models.GradeEntry{
				{Grade: grades.LetterF, Semester: "Fall 2023"},
			}},
		}
		// (4.0 + 3.3 + 0.0) / 3
		assert.InDelta(t, 7.3/3, CurrentGPA(subjects), 1e-9)
	})

	t.Run("unknown letters are skipped, not counted as zero", func(t *testing.T) {
		subjects := []models.Subject{
			{ID: 1, Grades: []models.GradeEntry{
				{Grade: grades.Letter("X"), Semester: "Fall 2023"},
				{Grade: grades.LetterA, Semester: "Fall 2023"},
			}},
		}
		assert.InDelta(t, 3.7, CurrentGPA(subjects), 1e-9)
	})
}

func TestPreviousGPA(t *testing.T) {
	assert.Zero(t, PreviousGPA(nil))
	assert.Zero(t, PreviousGPA([]models.HistoricalGPAPoint{{Name: "Fall 2023", GPA: 3.5}}))

	points := []models.HistoricalGPAPoint{
		{Name: "Spring 2023", GPA: 3.1},
		{Name: "Fall 2023", GPA: 3.5},
		{Name: "Spring 2024", GPA: 3.8},
	}
	assert.Equal(t, 3.5, PreviousGPA(points))
}

func TestTrend(t *testing.T) {
	assert.Equal(t, TrendUp, Trend(0.2))
	assert.Equal(t, TrendDown, Trend(-0.1))
	assert.Equal(t, TrendStable, Trend(0))
}

func TestAttendancePercentage(t *testing.T) {
	record := models.AttendanceRecord{TotalClasses: 40, Attended: 38}
	assert.InDelta(t, 95, AttendancePercentage(record), 1e-9)
	assert.Equal(t, RiskLow, Classify(AttendancePercentage(record)))

	assert.Zero(t, AttendancePercentage(models.AttendanceRecord{TotalClasses: 0, Attended: 5}))
}

func TestAggregateAttendance(t *testing.T) {
	records := []models.AttendanceRecord{
		{TotalClasses: 40, Attended: 30, Late: 5, Absent: 5},
		{TotalClasses: 10, Attended: 10},
	}

	breakdown := AggregateAttendance(records)
	assert.InDelta(t, 80, breakdown.Present, 1e-9)
	assert.InDelta(t, 10, breakdown.Late, 1e-9)
	assert.InDelta(t, 10, breakdown.Absent, 1e-9)

	assert.Equal(t, AttendanceBreakdown{}, AggregateAttendance(nil))
}

func TestCompletionRate(t *testing.T) {
	assert.Zero(t, CompletionRate(nil))

	assignments := []models.Assignment{
		{ID: 1, Status: models.AssignmentStatusCompleted},
		{ID: 2, Status: models.AssignmentStatusCompleted},
		{ID: 3, Status: models.AssignmentStatusPending},
		{ID: 4, Status: models.AssignmentStatusInProgress},
	}
	assert.Equal(t, 50, CompletionRate(assignments))

	// 1 of 3 rounds to nearest integer.
	assert.Equal(t, 33, CompletionRate(assignments[1:]))
}

func TestCurrentVsPrevious(t *testing.T) {
	t.Run("no grades", func(t *testing.T) {
		result := CurrentVsPrevious(models.Subject{ID: 1})
		assert.Nil(t, result.Current)
		assert.Nil(t, result.Previous)
	})

	t.Run("single grade", func(t *testing.T) {
		subject := models.Subject{Grades: []models.GradeEntry{
			{Grade: grades.LetterB, Semester: "Fall 2023"},
		}}
		result := CurrentVsPrevious(subject)
		require.NotNil(t, result.Current)
		assert.Equal(t, grades.LetterB, result.Current.Grade)
		assert.Nil(t, result.Previous)
	})

	t.Run("labels sort descending as strings", func(t *testing.T) {
		subject := models.Subject{Grades: []models.GradeEntry{
			{Grade: grades.LetterC, Semester: "Fall 2023"},
			{Grade: grades.LetterA, Semester: "Spring 2024"},
		}}
		result := CurrentVsPrevious(subject)
		require.NotNil(t, result.Current)
		require.NotNil(t, result.Previous)
		// "Spring" > "Fall" lexicographically, so Spring 2024 is current here.
		assert.Equal(t, "Spring 2024", result.Current.Semester)
		assert.Equal(t, "Fall 2023", result.Previous.Semester)
	})

	t.Run("insertion order does not matter", func(t *testing.T) {
		subject := models.Subject{Grades: []models.GradeEntry{
			{Grade: grades.LetterA, Semester: "Spring 2024"},
			{Grade: grades.LetterC, Semester: "Fall 2023"},
		}}
		result := CurrentVsPrevious(subject)
		assert.Equal(t, "Spring 2024", result.Current.Semester)
	})
}

func TestTotalStudyMinutes(t *testing.T) {
	assert.Zero(t, TotalStudyMinutes(nil))

	history := []models.StudyHistoryEntry{
		{Duration: 120}, {Duration: 90}, {Duration: 45},
	}
	assert.Equal(t, 255, TotalStudyMinutes(history))
}
