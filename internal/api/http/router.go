package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Teams          *handlers.TeamsHandler
	Floors         *handlers.FloorsHandler
	Assets         *handlers.AssetsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything under /api requires a bearer
// token; mutations additionally require team membership.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Get("/teams", cfg.Teams.List)
	api.Get("/teams/:id", cfg.Teams.Get)
	api.Post("/teams", cfg.Teams.Create)

	api.Get("/floors", cfg.Floors.List)

	scoped := api.Group("", auth.RequireTeam())
	scoped.Post("/floors", cfg.Floors.Create)
	scoped.Post("/rooms", cfg.Floors.CreateRoom)
	scoped.Put("/rooms/:id", cfg.Floors.UpdateRoom)
	scoped.Delete("/rooms/:id", cfg.Floors.DeleteRoom)

	api.Get("/assets", cfg.Assets.List)
	scoped.Get("/assets/check-code", cfg.Assets.CheckCode)
	scoped.Get("/assets/:id", cfg.Assets.Get)
	scoped.Post("/assets", cfg.Assets.Create)
	scoped.Put("/assets/:id", cfg.Assets.Update)
	scoped.Delete("/assets/:id", cfg.Assets.Delete)
}
