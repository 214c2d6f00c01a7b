package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/studypulse/studypulse-api/internal/middleware"
)

func parseIntParam(c *fiber.Ctx, name string) (int, error) {
	value := c.Params(name)
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return parsed, nil
}

func userIDFromContext(c *fiber.Ctx) uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func userNameFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_name"); v != nil {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}

func tokenIDFromContext(c *fiber.Ctx) string {
	if v := c.Locals("token_jti"); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func tokenExpiryFromContext(c *fiber.Ctx) time.Time {
	if v := c.Locals("token_exp"); v != nil {
		if exp, ok := v.(time.Time); ok {
			return exp
		}
	}
	return time.Time{}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
