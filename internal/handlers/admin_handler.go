package handlers

import (
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminHandler holds admin-only operations beyond answering.
type AdminHandler struct {
	archive *services.ArchiveService
	logger  *zap.Logger
}

// NewAdminHandler accepts a nil archive when object storage is not configured.
func NewAdminHandler(archive *services.ArchiveService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{archive: archive, logger: logger}
}

func (h *AdminHandler) Export(c *fiber.Ctx) error {
	if h.archive == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Export storage is not configured"})
	}
	res, err := h.archive.Export(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	h.logger.Info("archive exported", zap.String("object", res.Object), zap.Int("count", res.Count))
	return c.JSON(res)
}
