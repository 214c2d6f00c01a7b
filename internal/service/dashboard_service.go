package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/events"
	"github.com/studypulse/studypulse-api/internal/metrics"
	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/repository"
	"github.com/studypulse/studypulse-api/internal/store"
)

const dashboardCacheKey = "dashboard:overview"

// DashboardService produces the aggregated overview page metrics.
type DashboardService interface {
	GetDashboard(ctx context.Context) (dto.DashboardResponse, error)
	Start(ctx context.Context)
}

type dashboardService struct {
	grades      repository.GradeRepository
	assignments repository.AssignmentRepository
	attendance  repository.AttendanceRepository
	study       repository.StudyRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	bus         *events.Bus
	logger      zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator. cache and bus may be
// nil; caching and invalidation are then skipped.
func NewDashboardService(
	grades repository.GradeRepository,
	assignments repository.AssignmentRepository,
	attendance repository.AttendanceRepository,
	study repository.StudyRepository,
	cache *redis.Client,
	ttl time.Duration,
	bus *events.Bus,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		grades:      grades,
		assignments: assignments,
		attendance:  attendance,
		study:       study,
		cache:       cache,
		cacheTTL:    ttl,
		bus:         bus,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

// Start listens for slot changes and drops the cached overview so the next
// read re-derives from fresh collections.
func (s *dashboardService) Start(ctx context.Context) {
	if s.bus == nil || s.cache == nil {
		return
	}

	changes, cancel := s.bus.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-changes:
				if !ok {
					return
				}
				if !slotFeedsDashboard(change.Slot) {
					continue
				}
				if err := s.cache.Del(ctx, dashboardCacheKey).Err(); err != nil {
					s.logger.Warn().Err(err).Str("slot", change.Slot).Msg("failed to invalidate dashboard cache")
				}
			}
		}
	}()
}

func (s *dashboardService) GetDashboard(ctx context.Context) (dto.DashboardResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response := s.buildResponse(ctx)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *dashboardService) buildResponse(ctx context.Context) dto.DashboardResponse {
	subjects := s.grades.Subjects(ctx)
	historical := s.grades.HistoricalGPA(ctx)
	assignments := s.assignments.List(ctx)
	attendance := s.attendance.List(ctx)
	history := s.study.History(ctx)

	currentGPA := metrics.CurrentGPA(subjects)
	previousGPA := metrics.PreviousGPA(historical)
	delta := currentGPA - previousGPA

	breakdown := metrics.AggregateAttendance(attendance)

	var completed, pending int
	pendingTitles := make([]string, 0)
	for _, assignment := range assignments {
		if assignment.Status == models.AssignmentStatusCompleted {
			completed++
			continue
		}
		pending++
		pendingTitles = append(pendingTitles, assignment.Title)
	}

	totalMinutes := metrics.TotalStudyMinutes(history)

	return dto.DashboardResponse{
		GPA: dto.GPASummary{
			Current:  currentGPA,
			Previous: previousGPA,
			Delta:    delta,
			Trend:    metrics.Trend(delta),
		},
		Attendance: dto.AttendanceSummary{
			Percentage: breakdown.Present,
			Risk:       metrics.Classify(breakdown.Present),
		},
		Study: dto.StudySummary{
			TotalMinutes: totalMinutes,
			WeeklyHours:  weeklyStudyHours(history),
		},
		Assignments: dto.AssignmentSummary{
			Total:          len(assignments),
			Completed:      completed,
			Pending:        pending,
			CompletionRate: metrics.CompletionRate(assignments),
		},
		Breakdown:     breakdown,
		HistoricalGPA: toHistoricalPoints(historical),
		PendingTitles: pendingTitles,
	}
}

// weeklyStudyHours extrapolates a seven-day figure from the average daily
// study time across the days that have history.
func weeklyStudyHours(history []models.StudyHistoryEntry) float64 {
	if len(history) == 0 {
		return 0
	}

	days := make(map[string]struct{}, len(history))
	var totalMinutes int
	for _, entry := range history {
		days[entry.Date] = struct{}{}
		totalMinutes += entry.Duration
	}

	return float64(totalMinutes) / float64(len(days)) * 7 / 60
}

// slotFeedsDashboard reports whether a change to the slot affects the
// dashboard figures.
func slotFeedsDashboard(slot string) bool {
	switch slot {
	case store.KeySubjects, store.KeyHistoricalGPA, store.KeyAssignments, store.KeyAttendance, store.KeyStudyHistory:
		return true
	default:
		return false
	}
}
