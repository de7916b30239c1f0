package handlers

import (
	"github.com/arzan03/AskSolve/internal/middleware"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QuestionHandler struct {
	questions *services.QuestionService
	logger    *zap.Logger
}

func NewQuestionHandler(questions *services.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, logger: logger}
}

// Ask stores a question for the caller, copying their current name and place
// onto it.
func (h *QuestionHandler) Ask(c *fiber.Ctx) error {
	var request struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	role, _ := middleware.RoleFrom(c)
	id, err := h.questions.Create(c.UserContext(), request.Text, role.UserID, role.DisplayName, role.Place)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Question submitted successfully!",
		"id":      id.Hex(),
	})
}

// Answer sets or replaces the answer of a question.
func (h *QuestionHandler) Answer(c *fiber.Ctx) error {
	var request struct {
		Answer string `json:"answer"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.questions.Answer(c.UserContext(), c.Params("id"), request.Answer); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *QuestionHandler) PendingCount(c *fiber.Ctx) error {
	n, err := h.questions.CountUnanswered(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"count": n})
}
