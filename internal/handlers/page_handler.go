package handlers

import (
	"github.com/arzan03/AskSolve/internal/middleware"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PageHandler serves the data behind each page. The route guard has already
// authorized the caller by the time any of these run.
type PageHandler struct {
	pages  *services.Pages
	logger *zap.Logger
}

func NewPageHandler(pages *services.Pages, logger *zap.Logger) *PageHandler {
	return &PageHandler{pages: pages, logger: logger}
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	page, err := h.pages.Home(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(page)
}

func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	role, _ := middleware.RoleFrom(c)
	page, err := h.pages.Dashboard(c.UserContext(), role)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(page)
}

func (h *PageHandler) Admin(c *fiber.Ctx) error {
	role, _ := middleware.RoleFrom(c)
	page, err := h.pages.Admin(c.UserContext(), role)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(page)
}
