package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/service"
	"github.com/studypulse/studypulse-api/internal/utils"
)

// AttendanceHandler wires attendance HTTP routes.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches attendance endpoints to the router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("", h.overview)
	router.Post("/mark", h.mark)
}

func (h *AttendanceHandler) overview(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "attendance retrieved", h.service.Overview(c.Context()))
}

func (h *AttendanceHandler) mark(c *fiber.Ctx) error {
	var payload dto.AttendanceMarkRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Mark(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttendanceRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "attendance record not found")
		case errors.Is(err, service.ErrAttendanceInconsistent):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to mark attendance")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccess(c, "attendance marked", record)
}
