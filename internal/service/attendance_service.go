package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/metrics"
	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/repository"
)

var (
	// ErrAttendanceRecordNotFound indicates no record exists for the subject.
	ErrAttendanceRecordNotFound = errors.New("attendance record not found")
	// ErrAttendanceInconsistent indicates the marked counts would exceed the
	// class total.
	ErrAttendanceInconsistent = errors.New("attendance counts exceed total classes")
)

// Attendance mark statuses.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusLate    = "late"
	AttendanceStatusAbsent  = "absent"
)

// AttendanceService exposes attendance tracking use cases.
type AttendanceService interface {
	Overview(ctx context.Context) dto.AttendanceOverviewResponse
	Mark(ctx context.Context, payload dto.AttendanceMarkRequest) (dto.AttendanceRecordResponse, error)
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAttendanceService builds the attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) Overview(ctx context.Context) dto.AttendanceOverviewResponse {
	records := s.repo.List(ctx)

	responses := make([]dto.AttendanceRecordResponse, 0, len(records))
	atRisk := make([]string, 0)
	for _, record := range records {
		response := toAttendanceResponse(record)
		responses = append(responses, response)
		if response.Percentage < 75 {
			atRisk = append(atRisk, record.Name)
		}
	}

	return dto.AttendanceOverviewResponse{
		Records:   responses,
		Breakdown: metrics.AggregateAttendance(records),
		AtRisk:    atRisk,
	}
}

// Mark increments one status counter on the subject's record. A mark that
// would push attended+late+absent past the class total is rejected; counts
// that violate the invariant never reach the slot.
func (s *attendanceService) Mark(ctx context.Context, payload dto.AttendanceMarkRequest) (dto.AttendanceRecordResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceRecordResponse{}, err
	}

	records := s.repo.List(ctx)

	index := -1
	for i := range records {
		if records[i].ID == payload.SubjectID {
			index = i
			break
		}
	}
	if index < 0 {
		return dto.AttendanceRecordResponse{}, ErrAttendanceRecordNotFound
	}

	record := records[index]
	switch payload.Status {
	case AttendanceStatusPresent:
		record.Attended++
	case AttendanceStatusLate:
		record.Late++
	case AttendanceStatusAbsent:
		record.Absent++
	}

	if !record.Consistent() {
		return dto.AttendanceRecordResponse{}, ErrAttendanceInconsistent
	}

	records[index] = record
	if err := s.repo.Save(ctx, records); err != nil {
		return dto.AttendanceRecordResponse{}, err
	}

	s.logger.Info().
		Int("subject_id", payload.SubjectID).
		Str("status", payload.Status).
		Msg("attendance marked")

	return toAttendanceResponse(record), nil
}

func toAttendanceResponse(record models.AttendanceRecord) dto.AttendanceRecordResponse {
	percentage := metrics.AttendancePercentage(record)

	return dto.AttendanceRecordResponse{
		ID:           record.ID,
		Name:         record.Name,
		TotalClasses: record.TotalClasses,
		Attended:     record.Attended,
		Late:         record.Late,
		Absent:       record.Absent,
		Percentage:   percentage,
		Risk:         metrics.Classify(percentage),
	}
}
