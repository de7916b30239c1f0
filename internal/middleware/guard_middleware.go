package middleware

import (
	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/models"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Guard runs the access policy for class before the route handler. Redirect
// and error outcomes end the request here, so no handler behind a guard can
// fetch data for a caller the policy did not authorize.
func Guard(policy *services.Policy, class services.RouteClass, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := policy.Authorize(c.UserContext(), class, SessionFrom(c))
		switch out.State {
		case services.Authorized:
			if out.Role != nil {
				c.Locals(roleKey, *out.Role)
			}
			return c.Next()
		case services.Redirected:
			status := fiber.StatusUnauthorized
			if out.Redirect == services.HomeRoute {
				status = fiber.StatusForbidden
			}
			return c.Status(status).JSON(fiber.Map{
				"error":    apperr.Message(out.Err),
				"redirect": out.Redirect,
			})
		default:
			logger.Error("access check failed", zap.String("path", c.Path()), zap.Error(out.Err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":    apperr.Message(out.Err),
				"redirect": out.Redirect,
			})
		}
	}
}

// RoleFrom returns the snapshot stored by Guard. ok is false on public routes.
func RoleFrom(c *fiber.Ctx) (models.RoleSnapshot, bool) {
	role, ok := c.Locals(roleKey).(models.RoleSnapshot)
	return role, ok
}
