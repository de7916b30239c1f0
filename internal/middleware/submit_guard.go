package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v2"
)

// SubmitGuard rejects a mutation while the same user already has one in
// flight, so a double-clicked submit cannot write twice.
type SubmitGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{active: make(map[string]struct{})}
}

func (g *SubmitGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

func (g *SubmitGuard) release(key string) {
	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
}

// Handler must run after Guard so the role snapshot is available.
func (g *SubmitGuard) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := RoleFrom(c)
		if !ok {
			return c.Next()
		}
		if !g.acquire(role.UserID) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "submission already in progress"})
		}
		defer g.release(role.UserID)
		return c.Next()
	}
}
