package ui

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the UI feature.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/", handler.RenderHome)

	ui := app.Group("/ui")
	ui.Get("/", handler.RenderHome)
	ui.Get("/queue", handler.RenderQueueSection)
	ui.Get("/deleting", handler.RenderDeletingSection)
	ui.Get("/import", handler.RenderImportSection)
	ui.Get("/stats", handler.RenderStatsSection)
	ui.Get("/settings", handler.GetSettingsSection)
}
