package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/metrics"
	"github.com/studypulse/studypulse-api/internal/repository"
	"github.com/studypulse/studypulse-api/pkg/predict"
)

// PredictionService assembles the student feature record from live
// collections and forwards it to the prediction gateway.
type PredictionService interface {
	Predict(ctx context.Context, studentName string, payload dto.PredictionRequest) (dto.PredictionResponse, error)
}

type predictionService struct {
	gateway     predict.Gateway
	grades      repository.GradeRepository
	assignments repository.AssignmentRepository
	attendance  repository.AttendanceRepository
	study       repository.StudyRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewPredictionService builds the prediction service.
func NewPredictionService(
	gateway predict.Gateway,
	grades repository.GradeRepository,
	assignments repository.AssignmentRepository,
	attendance repository.AttendanceRepository,
	study repository.StudyRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) PredictionService {
	return &predictionService{
		gateway:     gateway,
		grades:      grades,
		assignments: assignments,
		attendance:  attendance,
		study:       study,
		validator:   validate,
		logger:      logger.With().Str("component", "prediction_service").Logger(),
	}
}

// Predict derives GPA, attendance, study hours, and completion rate from the
// stored collections; participation and test performance come from the
// request. Gateway failures propagate to the caller, which owns the retry
// affordance.
func (s *predictionService) Predict(ctx context.Context, studentName string, payload dto.PredictionRequest) (dto.PredictionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PredictionResponse{}, err
	}

	subjects := s.grades.Subjects(ctx)
	assignments := s.assignments.List(ctx)
	attendance := s.attendance.List(ctx)
	history := s.study.History(ctx)

	features := predict.StudentFeatures{
		Name:                 studentName,
		GPA:                  metrics.CurrentGPA(subjects),
		Attendance:           metrics.AggregateAttendance(attendance).Present,
		StudyHours:           weeklyStudyHours(history),
		AssignmentCompletion: float64(metrics.CompletionRate(assignments)),
		ClassParticipation:   payload.ClassParticipation,
		TestPerformance:      payload.TestPerformance,
	}

	prediction, err := s.gateway.Predict(ctx, features)
	if err != nil {
		s.logger.Error().Err(err).Msg("grade prediction failed")
		return dto.PredictionResponse{}, err
	}

	s.logger.Info().
		Float64("predicted_grade", prediction.PredictedGrade).
		Str("risk", prediction.Insights.Risk).
		Msg("grade prediction produced")

	return dto.PredictionResponse{Features: features, Prediction: prediction}, nil
}
