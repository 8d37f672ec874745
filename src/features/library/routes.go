package library

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the library feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	library := app.Group("/library")
	library.Get("/songs/count", handler.GetSongsCount)
	library.Get("/songs", handler.GetSongs)
	library.Get("/songs/:id", handler.GetSong)
	library.Get("/search", handler.SearchSongs)
	library.Get("/find", handler.FindByTitle)
}
