package handler

import (
	"github.com/annrbk/Auth-app-backend/internal/account/service"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the public and guard-protected endpoints. The path
// shapes are kept as existing clients expect them.
func RegisterRoutes(app *fiber.App, h *AccountHandler, tokens service.TokenIssuer) {
	guard := RequireAuth(tokens)

	app.Post("/register", h.Register)
	app.Post("/login", h.Login)

	app.Get("/api/validateToken", guard, h.ValidateToken)
	app.Get("/users", guard, h.List)

	admin := app.Group("/api/users", guard)
	admin.Put("/block/:id", h.Block)
	admin.Put("/unblock/:id", h.Unblock)
	admin.Delete("/delete/:id", h.Delete)
}
