package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/grades"
	"github.com/studypulse/studypulse-api/internal/service"
	"github.com/studypulse/studypulse-api/internal/utils"
)

// GradeHandler wires grade HTTP routes.
type GradeHandler struct {
	service service.GradeService
	logger  zerolog.Logger
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(service service.GradeService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: service,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register attaches grade endpoints to the router group.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Get("", h.overview)
	router.Get("/scale", h.scale)
	router.Post("", h.add)
}

func (h *GradeHandler) overview(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "grades retrieved", h.service.Overview(c.Context()))
}

// scale exposes the letter scale so clients render pickers from the server's
// enumeration instead of hardcoding it.
func (h *GradeHandler) scale(c *fiber.Ctx) error {
	letters := grades.Letters()
	scale := make([]fiber.Map, 0, len(letters))
	for _, letter := range letters {
		points, _ := letter.Points()
		percent, _ := letter.Percent()
		scale = append(scale, fiber.Map{
			"letter":  letter,
			"points":  points,
			"percent": percent,
		})
	}

	return utils.SendSuccess(c, "grade scale retrieved", scale)
}

func (h *GradeHandler) add(c *fiber.Ctx) error {
	var payload dto.GradeAddRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	overview, err := h.service.AddGrade(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		case errors.Is(err, grades.ErrUnknownLetter), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to add grade")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grade recorded", overview)
}
