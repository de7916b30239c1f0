package handlers

import (
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contact *services.ContactService
	logger  *zap.Logger
}

func NewContactHandler(contact *services.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contact: contact, logger: logger}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var msg models.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.contact.Submit(c.UserContext(), msg); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Email sent successfully."})
}
