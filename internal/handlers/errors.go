package handlers

import (
	"errors"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrAuthenticationRequired):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperr.ErrAuthorizationDenied):
		return fiber.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperr.ErrTransientStore):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// respondError turns err into a visible message. Every failure in a handler
// ends here; none escape as an unhandled fault.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := StatusOf(err)
	body := fiber.Map{"error": apperr.Message(err)}

	switch status {
	case fiber.StatusBadRequest:
		if field := apperr.FieldOf(err); field != "" {
			body["field"] = field
		}
	case fiber.StatusUnauthorized:
		body["redirect"] = services.LoginRoute
	case fiber.StatusForbidden:
		body["redirect"] = services.HomeRoute
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(body)
}
