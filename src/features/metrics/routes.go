package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// RegisterRoutes registers the metrics routes with the Fiber app. The
// Prometheus endpoint is mounted only when a collector is given.
func RegisterRoutes(app *fiber.App, service *Service, collector *Collector, path string) {
	handler := NewHandler(service)

	app.Get("/metrics/overview", handler.GetMetricsOverview)
	app.Get("/ui/metrics/overview", handler.GetMetricsOverview)

	if collector != nil {
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(collector.HTTPHandler()))
	}
}
