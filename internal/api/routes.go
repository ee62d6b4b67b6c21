package api

import (
	"github.com/gofiber/fiber/v2"

	"pmportal/internal/middleware"
)

// RegisterRoutes mounts the whole API surface on app. The admin guard is
// attached per route: mounting it as group middleware would put it on the
// /api prefix and gate the user-scoped routes too.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", h.Login)

	authed := api.Group("", middleware.Authenticated(h.cfg.Auth.JWTSecret))
	adminOnly := middleware.AdminOnly()

	authed.Post("/auth/logout", h.Logout)
	authed.Get("/auth/me", h.Me)

	authed.Get("/documents", h.ListDocuments)
	authed.Post("/documents", h.SubmitDocument)
	authed.Get("/documents/export", adminOnly, h.ExportDocuments)
	authed.Get("/documents/:id", h.GetDocument)
	authed.Patch("/documents/:id/status", adminOnly, h.SetDocumentStatus)
	authed.Post("/documents/:id/comments", h.AddDocumentComment)

	authed.Get("/units", h.ListUnits)
	authed.Get("/users", adminOnly, h.ListUsers)
	authed.Post("/users", adminOnly, h.CreateUser)
	authed.Get("/users/:id", adminOnly, h.GetUser)
	authed.Put("/users/:id", adminOnly, h.UpdateUser)
	authed.Delete("/users/:id", adminOnly, h.DeleteUser)
	authed.Patch("/users/:id/active", adminOnly, h.ToggleUserActive)

	authed.Get("/missions", h.ListMissions)
	authed.Post("/missions", adminOnly, h.CreateMission)
	authed.Get("/missions/:id", h.GetMission)
	authed.Put("/missions/:id", adminOnly, h.UpdateMission)
	authed.Delete("/missions/:id", adminOnly, h.DeleteMission)
	authed.Post("/missions/:id/submissions", h.AddSubmission)
	authed.Get("/missions/:id/submissions/:sid", h.GetSubmission)
	authed.Patch("/missions/:id/submissions/:sid", h.UpdateSubmission)
	authed.Delete("/missions/:id/submissions/:sid", h.DeleteSubmission)

	authed.Get("/dashboard", h.Dashboard)
}
