package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/grades"
	"github.com/studypulse/studypulse-api/internal/metrics"
	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/repository"
)

// ErrSubjectNotFound indicates the requested subject does not exist.
var ErrSubjectNotFound = errors.New("subject not found")

// GradeService exposes the grades page use cases.
type GradeService interface {
	Overview(ctx context.Context) dto.GradeOverviewResponse
	AddGrade(ctx context.Context, payload dto.GradeAddRequest) (dto.GradeOverviewResponse, error)
}

type gradeService struct {
	repo      repository.GradeRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGradeService builds the grade service.
func NewGradeService(repo repository.GradeRepository, validate *validator.Validate, logger zerolog.Logger) GradeService {
	return &gradeService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "grade_service").Logger(),
	}
}

func (s *gradeService) Overview(ctx context.Context) dto.GradeOverviewResponse {
	subjects := s.repo.Subjects(ctx)
	historical := s.repo.HistoricalGPA(ctx)

	return buildGradeOverview(subjects, historical)
}

// AddGrade appends a grade entry to the subject and records a new historical
// GPA point named after the semester. Points are append-only; duplicate
// period names are allowed.
func (s *gradeService) AddGrade(ctx context.Context, payload dto.GradeAddRequest) (dto.GradeOverviewResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GradeOverviewResponse{}, err
	}

	letter, err := grades.ParseLetter(payload.Grade)
	if err != nil {
		return dto.GradeOverviewResponse{}, err
	}

	subjects := s.repo.Subjects(ctx)

	found := false
	for i := range subjects {
		if subjects[i].ID == payload.SubjectID {
			subjects[i].Grades = append(subjects[i].Grades, models.GradeEntry{
				Grade:    letter,
				Semester: payload.Semester,
			})
			found = true
			break
		}
	}

	if !found {
		return dto.GradeOverviewResponse{}, ErrSubjectNotFound
	}

	if err := s.repo.SaveSubjects(ctx, subjects); err != nil {
		return dto.GradeOverviewResponse{}, err
	}

	historical := append(s.repo.HistoricalGPA(ctx), models.HistoricalGPAPoint{
		Name: payload.Semester,
		GPA:  metrics.CurrentGPA(subjects),
	})
	if err := s.repo.SaveHistoricalGPA(ctx, historical); err != nil {
		return dto.GradeOverviewResponse{}, err
	}

	s.logger.Info().
		Int("subject_id", payload.SubjectID).
		Str("grade", string(letter)).
		Str("semester", payload.Semester).
		Msg("grade recorded")

	return buildGradeOverview(subjects, historical), nil
}

func buildGradeOverview(subjects []models.Subject, historical []models.HistoricalGPAPoint) dto.GradeOverviewResponse {
	responses := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		pair := metrics.CurrentVsPrevious(subject)
		responses = append(responses, dto.SubjectResponse{
			ID:       subject.ID,
			Name:     subject.Name,
			Grades:   subject.Grades,
			Current:  toSemesterGrade(pair.Current),
			Previous: toSemesterGrade(pair.Previous),
		})
	}

	return dto.GradeOverviewResponse{
		Subjects:      responses,
		CurrentGPA:    metrics.CurrentGPA(subjects),
		PreviousGPA:   metrics.PreviousGPA(historical),
		HistoricalGPA: toHistoricalPoints(historical),
	}
}

func toSemesterGrade(entry *models.GradeEntry) *dto.SemesterGrade {
	if entry == nil {
		return nil
	}

	points, ok := entry.Grade.Points()
	if !ok {
		// An unrecognised stored letter means "no grade", never zero.
		return nil
	}
	percent, _ := entry.Grade.Percent()

	return &dto.SemesterGrade{
		Grade:    string(entry.Grade),
		Semester: entry.Semester,
		Points:   points,
		Percent:  percent,
	}
}

func toHistoricalPoints(points []models.HistoricalGPAPoint) []dto.HistoricalGPAPoint {
	result := make([]dto.HistoricalGPAPoint, 0, len(points))
	for _, point := range points {
		result = append(result, dto.HistoricalGPAPoint{Name: point.Name, GPA: point.GPA})
	}

	return result
}
