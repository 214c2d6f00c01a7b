package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/service"
	"github.com/studypulse/studypulse-api/internal/utils"
)

// PlannerHandler wires study planner HTTP routes.
type PlannerHandler struct {
	service service.PlannerService
	logger  zerolog.Logger
}

// NewPlannerHandler constructs the handler.
func NewPlannerHandler(service service.PlannerService, logger zerolog.Logger) *PlannerHandler {
	return &PlannerHandler{
		service: service,
		logger:  logger.With().Str("component", "planner_handler").Logger(),
	}
}

// Register attaches planner endpoints to the router group.
func (h *PlannerHandler) Register(router fiber.Router) {
	router.Get("", h.overview)
	router.Post("/sessions", h.createSession)
	router.Post("/sessions/:id/complete", h.completeSession)
	router.Delete("/sessions/:id", h.deleteSession)
}

func (h *PlannerHandler) overview(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "planner retrieved", h.service.Overview(c.Context()))
}

func (h *PlannerHandler) createSession(c *fiber.Ctx) error {
	var payload dto.SessionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.CreateSession(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session scheduled", session)
}

func (h *PlannerHandler) completeSession(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SessionCompleteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.service.CompleteSession(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "study session not found")
		case errors.Is(err, service.ErrSessionAlreadyCompleted):
			return utils.SendError(c, fiber.StatusConflict, "study session already completed")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "session completed", entry)
}

func (h *PlannerHandler) deleteSession(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteSession(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "study session not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "session deleted", fiber.Map{"id": id})
}

func (h *PlannerHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
