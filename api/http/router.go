package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/fundwatch/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. Paths live under
// /api without a version segment: existing clients depend on them as-is.
func Register(app *fiber.App, auth *handlers.AuthHandler, saved *handlers.SavedFundsHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	a := api.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Get("/me", authMW, auth.Me)

	sf := api.Group("/saved-funds", authMW)
	sf.Get("/", saved.List)
	sf.Post("/", saved.Save)
	sf.Delete("/:fundId", saved.Remove)
	sf.Get("/:fundId/check", saved.Check)
}
