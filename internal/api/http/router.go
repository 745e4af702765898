package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-tracker/internal/api/http/handlers"
	"github.com/spec-kit/request-tracker/internal/auth"
	"github.com/spec-kit/request-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Auth           *handlers.AuthHandler
	Requests       *handlers.RequestsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Submission and read endpoints stay open;
// the session reader and the internal dashboard aggregate sit behind the
// bearer-token middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/users/signup", cfg.Users.SignUp)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/session", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Session)

	requests := app.Group("/requests")
	requests.Get("/", cfg.Requests.List)
	requests.Post("/", cfg.Requests.Create)
	requests.Get("/summary", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleInternal), cfg.Requests.Summary)
	requests.Get("/:id", cfg.Requests.Get)
	requests.Post("/:id/details", cfg.Requests.AppendDetails)
}
