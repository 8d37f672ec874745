package config

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the settings endpoints under /config.
func RegisterRoutes(app *fiber.App, configManager *Manager) {
	handler := NewHandler(configManager)

	app.Get("/config", handler.GetConfig)
	settings := app.Group("/config")
	settings.Get("/form", handler.GetConfigForm)
	settings.Post("/update", handler.UpdateSettings)
}
