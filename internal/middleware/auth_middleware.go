package middleware

import (
	"errors"
	"strings"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	sessionKey = "session"
	roleKey    = "role"

	// SessionCookie is read when no Authorization header is sent.
	SessionCookie = "auth_token"
)

// Session verifies the bearer token (or session cookie) and stores the
// resulting SessionContext for the rest of the chain. It never rejects a
// request; route guards decide what an anonymous caller may see.
func Session(idp services.IdentityProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := &services.SessionContext{Token: bearerToken(c)}
		if sess.Token != "" {
			id, err := idp.Verify(c.UserContext(), sess.Token)
			switch {
			case err == nil:
				sess.Identity = id
			case errors.Is(err, apperr.ErrTransientStore):
				sess.Err = err
			}
		}
		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// SessionFrom returns the request's session context, anonymous if Session did
// not run.
func SessionFrom(c *fiber.Ctx) *services.SessionContext {
	if sess, ok := c.Locals(sessionKey).(*services.SessionContext); ok && sess != nil {
		return sess
	}
	return &services.SessionContext{}
}

func bearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return c.Cookies(SessionCookie)
}
