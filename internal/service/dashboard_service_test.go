package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studypulse/studypulse-api/internal/events"
	"github.com/studypulse/studypulse-api/internal/grades"
	"github.com/studypulse/studypulse-api/internal/metrics"
	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/store"
)

func dashboardFixture() (*memoryGradeRepo, *memoryAssignmentRepo, *memoryAttendanceRepo, *memoryStudyRepo) {
	gradeRepo := &memoryGradeRepo{
		subjects: []models.Subject{
			{ID: 1, Name: "Machine Learning", Grades: []models.GradeEntry{
				{Grade: grades.LetterA, Semester: "Fall 2023"},
			}},
		},
		historical: []models.HistoricalGPAPoint{
			{Name: "Spring 2023", GPA: 3.2},
			{Name: "Fall 2023", GPA: 3.7},
		},
	}

	assignmentRepo := &memoryAssignmentRepo{assignments: []models.Assignment{
		{ID: 1, Title: "Lab report", Status: models.AssignmentStatusCompleted},
		{ID: 2, Title: "Essay", Status: models.AssignmentStatusPending},
	}}

	attendanceRepo := &memoryAttendanceRepo{records: []models.AttendanceRecord{
		{ID: 1, Name: "Machine Learning", TotalClasses: 40, Attended: 38, Late: 1, Absent: 1},
	}}

	studyRepo := &memoryStudyRepo{history: []models.StudyHistoryEntry{
		{ID: 1, Date: "2023-11-15", Duration: 120},
		{ID: 2, Date: "2023-11-14", Duration: 60},
	}}

	return gradeRepo, assignmentRepo, attendanceRepo, studyRepo
}

func TestGetDashboardAggregates(t *testing.T) {
	gradeRepo, assignmentRepo, attendanceRepo, studyRepo := dashboardFixture()
	svc := NewDashboardService(gradeRepo, assignmentRepo, attendanceRepo, studyRepo, nil, 0, nil, zerolog.Nop())

	response, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 3.7, response.GPA.Current, 1e-9)
	assert.InDelta(t, 3.2, response.GPA.Previous, 1e-9)
	assert.Equal(t, metrics.TrendUp, response.GPA.Trend)

	assert.InDelta(t, 95, response.Attendance.Percentage, 1e-9)
	assert.Equal(t, metrics.RiskLow, response.Attendance.Risk)

	assert.Equal(t, 50, response.Assignments.CompletionRate)
	assert.Equal(t, []string{"Essay"}, response.PendingTitles)

	assert.Equal(t, 180, response.Study.TotalMinutes)
	// 90 minutes per tracked day extrapolates to 10.5 weekly hours.
	assert.InDelta(t, 10.5, response.Study.WeeklyHours, 1e-9)
}

func TestGetDashboardUsesCache(t *testing.T) {
	gradeRepo, assignmentRepo, attendanceRepo, studyRepo := dashboardFixture()

	mini := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	svc := NewDashboardService(gradeRepo, assignmentRepo, attendanceRepo, studyRepo, cache, time.Minute, nil, zerolog.Nop())
	ctx := context.Background()

	first, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	// A write that bypasses the bus is not observed while the cache holds.
	gradeRepo.subjects[0].Grades = append(gradeRepo.subjects[0].Grades, models.GradeEntry{
		Grade: grades.LetterF, Semester: "Spring 2024",
	})

	second, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.GPA.Current, second.GPA.Current)
}

func TestDashboardCacheInvalidatedByBusEvents(t *testing.T) {
	gradeRepo, assignmentRepo, attendanceRepo, studyRepo := dashboardFixture()

	mini := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	bus := events.NewBus(nil, nil, "", zerolog.Nop())
	svc := NewDashboardService(gradeRepo, assignmentRepo, attendanceRepo, studyRepo, cache, time.Minute, bus, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)

	_, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	gradeRepo.subjects[0].Grades = append(gradeRepo.subjects[0].Grades, models.GradeEntry{
		Grade: grades.LetterF, Semester: "Spring 2024",
	})
	bus.Publish(ctx, store.KeySubjects)

	require.Eventually(t, func() bool {
		response, err := svc.GetDashboard(ctx)
		if err != nil {
			return false
		}
		return response.GPA.Current < 3.7
	}, 2*time.Second, 10*time.Millisecond, "cache should drop after a subjects change")
}

func TestWeeklyStudyHoursEmptyHistory(t *testing.T) {
	assert.Zero(t, weeklyStudyHours(nil))
}
