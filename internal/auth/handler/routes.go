package handler

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, p *ProjectHandler) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Server is up and running.")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/api/auth", h.VerifyToken)

	app.Post("/api/users/register", h.Register)
	app.Post("/api/users/login", h.Login)
	app.Get("/api/users/user", h.Protect, h.GetUser)

	// Admin-only endpoints
	admin := app.Group("/api/admin", h.Protect, h.RequireAdmin)
	admin.Get("/users", h.GetAllUsers)

	projects := app.Group("/api/projects", h.Protect)
	projects.Post("/:projectId/users", p.AddMember)
	projects.Delete("/:projectId/users/:userId", p.RemoveMember)
}
