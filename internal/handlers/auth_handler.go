package handlers

import (
	"time"

	"github.com/arzan03/AskSolve/internal/middleware"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	idp    services.IdentityProvider
	roles  *services.RoleResolver
	logger *zap.Logger
}

func NewAuthHandler(idp services.IdentityProvider, roles *services.RoleResolver, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{idp: idp, roles: roles, logger: logger}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
		Place       string `json:"place"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, err := h.idp.SignUp(c.UserContext(), services.SignUpRequest{
		Email:       request.Email,
		Password:    request.Password,
		DisplayName: request.DisplayName,
		Place:       request.Place,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Account created successfully",
		"id":       id,
		"redirect": services.LoginRoute,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sess, err := h.idp.SignIn(c.UserContext(), request.Email, request.Password)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	role, err := h.roles.Resolve(c.UserContext(), &sess.SessionIdentity)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.Token,
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{
		"token":     sess.Token,
		"expiresAt": sess.ExpiresAt,
		"user":      role,
		"home":      role.Home(),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := middleware.SessionFrom(c)
	if err := h.idp.SignOut(c.UserContext(), sess.Token); err != nil {
		return respondError(c, h.logger, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the caller's role snapshot; mounted behind an Authenticated guard.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	role, _ := middleware.RoleFrom(c)
	return c.JSON(fiber.Map{"user": role, "home": role.Home()})
}
