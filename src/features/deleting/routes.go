package deleting

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the deleting feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	deleting := app.Group("/deleting")
	deleting.Post("/stage/:id", handler.Stage)
	deleting.Post("/undo", handler.Undo)
	deleting.Post("/commit", handler.Commit)
	deleting.Post("/flush", handler.Flush)
	deleting.Get("/staged", handler.GetStaged)
	deleting.Get("/history", handler.GetHistory)
	deleting.Delete("/songs/:id", handler.DeleteNow)
}
