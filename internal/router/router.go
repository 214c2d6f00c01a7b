package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/studypulse/studypulse-api/internal/config"
	"github.com/studypulse/studypulse-api/internal/handler"
	"github.com/studypulse/studypulse-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	DashboardHandler  *handler.DashboardHandler
	GradeHandler      *handler.GradeHandler
	AssignmentHandler *handler.AssignmentHandler
	AttendanceHandler *handler.AttendanceHandler
	PlannerHandler    *handler.PlannerHandler
	PredictionHandler *handler.PredictionHandler
	ProfileHandler    *handler.ProfileHandler
	EventsHandler     *handler.EventsHandler
	JWTMiddleware     fiber.Handler
	PredictionLimiter fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware))
	}

	if deps.GradeHandler != nil {
		deps.GradeHandler.Register(api.Group("/grades", jwtMiddleware))
	}

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(api.Group("/assignments", jwtMiddleware))
	}

	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(api.Group("/attendance", jwtMiddleware))
	}

	if deps.PlannerHandler != nil {
		deps.PlannerHandler.Register(api.Group("/planner", jwtMiddleware))
	}

	if deps.PredictionHandler != nil {
		prediction := api.Group("/predictions", jwtMiddleware)
		if deps.PredictionLimiter != nil {
			prediction.Use(deps.PredictionLimiter)
		}
		deps.PredictionHandler.Register(prediction)
	}

	if deps.ProfileHandler != nil {
		deps.ProfileHandler.Register(api.Group("/profile", jwtMiddleware))
	}

	if deps.EventsHandler != nil {
		deps.EventsHandler.Register(api.Group("/events", jwtMiddleware))
	}
}
