package adding

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the adding feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	adding := app.Group("/adding")
	adding.Post("/queue", handler.Enqueue)
	adding.Get("/queue", handler.GetQueue)
	adding.Delete("/queue", handler.Clear)
	adding.Get("/queue/count", handler.GetQueueCount)
	adding.Get("/queue/peek", handler.Peek)
	adding.Post("/queue/dequeue", handler.Dequeue)
	adding.Post("/process", handler.ProcessAll)
}
