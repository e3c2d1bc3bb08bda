package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cryptobloom/backend/internal/api/http/handlers"
	"github.com/cryptobloom/backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Flowers        *handlers.FlowersHandler
	Trades         *handlers.TradesHandler
	Orders         *handlers.OrdersHandler
	Analytics      *handlers.AnalyticsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/auth/register", cfg.Auth.Register)
	api.Post("/auth/login", cfg.Auth.Login)
	api.Get("/auth/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	api.Post("/auth/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	api.Get("/flowers", cfg.Flowers.List)
	api.Get("/flowers/:id", cfg.Flowers.Get)

	users := api.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.GetProfile)
	users.Patch("/me", cfg.Users.UpdateProfile)

	trades := api.Group("/trades", cfg.AuthMiddleware.Handle)
	trades.Post("/", cfg.Trades.Execute)
	trades.Get("/", cfg.Trades.List)
	trades.Post("/:id/cancel", cfg.Trades.Cancel)

	orders := api.Group("/orders", cfg.AuthMiddleware.Handle)
	orders.Post("/", cfg.Orders.Checkout)
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)

	analytics := api.Group("/analytics", cfg.AuthMiddleware.Handle)
	analytics.Get("/portfolio", cfg.Analytics.Portfolio)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Post("/users/:id/deactivate", cfg.Admin.DeactivateUser)
	admin.Post("/users/:id/reactivate", cfg.Admin.ReactivateUser)
	admin.Post("/flowers", cfg.Admin.CreateFlower)
	admin.Patch("/flowers/:id", cfg.Admin.UpdateFlower)
	admin.Patch("/orders/:id/status", cfg.Admin.UpdateOrderStatus)
	admin.Get("/analytics", cfg.Admin.Metrics)
}
