package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agenda-pj/accounts/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. Paths match what the
// frontend already calls, so they stay at the root (no /api/v1 prefix).
func Register(app *fiber.App, users *handlers.UsersHandler, auth *handlers.AuthHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	app.Post("/usuarios", users.Create)
	app.Get("/usuarios", authMW, users.List)
	app.Put("/usuarios/:id", authMW, users.Update)
	app.Delete("/usuarios/:id", authMW, users.Delete)

	app.Post("/login", auth.Login)
	app.Post("/refresh-token", auth.Refresh)
	app.Get("/validate-token", authMW, auth.Validate)
}
