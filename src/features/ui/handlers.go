package ui

import (
	"log/slog"

	"github.com/contre95/songshelf/src/features/config"
	"github.com/contre95/songshelf/src/features/library"
	"github.com/contre95/songshelf/src/features/metrics"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the UI feature.
type Handler struct {
	configManager  *config.Manager
	libraryService *library.Service
	metricsService *metrics.Service
}

// NewHandler creates a new handler for the UI feature.
func NewHandler(configManager *config.Manager, libraryService *library.Service, metricsService *metrics.Service) *Handler {
	return &Handler{
		configManager:  configManager,
		libraryService: libraryService,
		metricsService: metricsService,
	}
}

// section renders the full page on a normal request and only the section
// partial on an HTMX request.
func section(c *fiber.Ctx, name string, data fiber.Map) error {
	if c.Get("HX-Request") != "true" {
		data["Section"] = name
		return c.Render("main", data)
	}
	return c.Render("sections/"+name, data)
}

// RenderHome renders the entry form next to the sorted listing.
func (h *Handler) RenderHome(c *fiber.Ctx) error {
	slog.Debug("RenderHome handler called")
	songs, err := h.libraryService.ListSongs(c.Context())
	if err != nil {
		slog.Error("Error loading songs", "error", err)
	}
	pagination := library.NewPagination(1, 50, len(songs))
	if len(songs) > 50 {
		songs = songs[:50]
	}
	return section(c, "home", fiber.Map{
		"Title":      "Songs",
		"Songs":      songs,
		"Pagination": pagination,
	})
}

// RenderQueueSection renders the pending additions page.
func (h *Handler) RenderQueueSection(c *fiber.Ctx) error {
	slog.Debug("RenderQueueSection handler called")
	return section(c, "queue", fiber.Map{
		"Title": "Pending additions",
	})
}

// RenderDeletingSection renders the delete stack page.
func (h *Handler) RenderDeletingSection(c *fiber.Ctx) error {
	slog.Debug("RenderDeletingSection handler called")
	return section(c, "deleting", fiber.Map{
		"Title": "Delete stack",
	})
}

// RenderImportSection renders the import page.
func (h *Handler) RenderImportSection(c *fiber.Ctx) error {
	slog.Debug("RenderImportSection handler called")
	cfg := h.configManager.Get()
	return section(c, "import", fiber.Map{
		"Title":          "Import",
		"WatcherEnabled": cfg.Watcher.Enabled,
		"WatchPath":      cfg.Watcher.Path,
	})
}

// RenderStatsSection renders the statistics page.
func (h *Handler) RenderStatsSection(c *fiber.Ctx) error {
	slog.Debug("RenderStatsSection handler called")
	overview, err := h.metricsService.Overview(c.Context())
	if err != nil {
		slog.Error("Error loading metrics", "error", err)
	}
	return section(c, "stats", fiber.Map{
		"Title":          "Stats",
		"Metrics":        overview,
		"MetricsEnabled": h.configManager.Get().Metrics.Enabled,
		"MetricsPath":    h.configManager.Get().Metrics.Path,
	})
}

// GetSettingsSection renders the settings page.
func (h *Handler) GetSettingsSection(c *fiber.Ctx) error {
	slog.Debug("GetSettings handler called")
	return section(c, "settings", fiber.Map{
		"Title": "Settings",
	})
}
