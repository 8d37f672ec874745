package editing

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the editing feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	editing := app.Group("/editing")
	editing.Post("/reload", handler.Reload)
	editing.Get("/songs/:id", handler.GetEditForm)
	editing.Post("/songs/:id", handler.UpdateSong)
	editing.Post("/songs/:id/refresh", handler.RefreshSong)
}
