package importing

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the importer under /import.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	imports := app.Group("/import")
	imports.Get("/directory/form", handler.GetDirectoryForm)
	imports.Post("/directory", handler.ImportDirectory)
	imports.Post("/file", handler.ImportFile)
}
