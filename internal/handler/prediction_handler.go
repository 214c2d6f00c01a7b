package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/service"
	"github.com/studypulse/studypulse-api/internal/utils"
)

// PredictionHandler wires the grade prediction endpoint.
type PredictionHandler struct {
	service service.PredictionService
	logger  zerolog.Logger
}

// NewPredictionHandler constructs the handler.
func NewPredictionHandler(service service.PredictionService, logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		logger:  logger.With().Str("component", "prediction_handler").Logger(),
	}
}

// Register attaches the prediction endpoint to the router group.
func (h *PredictionHandler) Register(router fiber.Router) {
	router.Post("", h.predict)
}

func (h *PredictionHandler) predict(c *fiber.Ctx) error {
	var payload dto.PredictionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Predict(c.Context(), userNameFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		// Upstream failures surface as 502 so the client can offer a retry.
		requestLogger(h.logger, c).Error().Err(err).Msg("prediction failed")
		return utils.SendError(c, fiber.StatusBadGateway, "prediction service unavailable")
	}

	return utils.SendSuccess(c, "prediction produced", response)
}
