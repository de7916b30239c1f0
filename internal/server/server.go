package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arzan03/AskSolve/internal/apperr"
	"github.com/arzan03/AskSolve/internal/handlers"
	"github.com/arzan03/AskSolve/internal/middleware"
	"github.com/arzan03/AskSolve/internal/notify"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer needs. Archive may be nil.
type Deps struct {
	Logger    *zap.Logger
	Identity  services.IdentityProvider
	Roles     *services.RoleResolver
	Questions *services.QuestionService
	Contact   *services.ContactService
	Archive   *services.ArchiveService
	Broker    notify.Broker

	CORSOrigin     string
	RequestTimeout time.Duration
	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

// New assembles the Fiber app and its route table.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "AskSolve API",
		ErrorHandler: errorHandler(d.Logger),
	})

	app.Use(fiberrecover.New())
	app.Use(requestid.New())
	app.Use(compress.New(compress.Config{
		// Buffered compression would hold back event-stream frames.
		Next: func(c *fiber.Ctx) bool { return strings.HasSuffix(c.Path(), "/stream") },
	}))
	if d.AccessLog {
		app.Use(logger.New())
	}
	origin := d.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(requestTimeout(d.RequestTimeout))
	app.Use(middleware.Session(d.Identity))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	policy := services.NewPolicy(d.Roles)
	public := middleware.Guard(policy, services.Public, d.Logger)
	authed := middleware.Guard(policy, services.Authenticated, d.Logger)
	admin := middleware.Guard(policy, services.AdminOnly, d.Logger)
	submit := middleware.NewSubmitGuard().Handler()

	authH := handlers.NewAuthHandler(d.Identity, d.Roles, d.Logger)
	pageH := handlers.NewPageHandler(services.NewPages(d.Questions), d.Logger)
	questionH := handlers.NewQuestionHandler(d.Questions, d.Logger)
	streamH := handlers.NewStreamHandler(d.Questions, d.Broker, d.Identity, d.Logger)
	contactH := handlers.NewContactHandler(d.Contact, d.Logger)
	adminH := handlers.NewAdminHandler(d.Archive, d.Logger)

	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/signup", authH.Register)
	auth.Post("/login", authH.Login)
	auth.Post("/logout", authH.Logout)
	api.Get("/me", authed, authH.Me)

	// Page Routes
	pages := api.Group("/pages")
	pages.Get("/home", public, pageH.Home)
	pages.Get("/dashboard", authed, pageH.Dashboard)
	pages.Get("/admin", admin, pageH.Admin)

	api.Post("/questions", authed, submit, questionH.Ask)
	api.Post("/contact", public, contactH.Submit)

	// Admin Routes
	adminGroup := api.Group("/admin", admin)
	adminGroup.Put("/questions/:id/answer", submit, questionH.Answer)
	adminGroup.Get("/pending", questionH.PendingCount)
	adminGroup.Get("/pending/stream", streamH.PendingStream)
	adminGroup.Post("/export", adminH.Export)

	return app
}

// requestTimeout bounds every store call made through the request context so a
// hung backend surfaces as an error.
func requestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		status := handlers.StatusOf(err)
		log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": apperr.Message(err)})
	}
}
