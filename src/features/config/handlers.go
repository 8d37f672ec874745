package config

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the config feature.
type Handler struct {
	configManager *Manager
}

// NewHandler creates a new handler for the config feature.
func NewHandler(configManager *Manager) *Handler {
	return &Handler{
		configManager: configManager,
	}
}

// UpdateSettings handles the form submission to update configuration.
// Server and database settings only take effect on restart and are kept.
func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	slog.Info("Configuration update requested")

	currentConfig := h.configManager.Get()
	newConfig := &Config{
		Database: currentConfig.Database,
		Server:   currentConfig.Server,
		Logger: Logger{
			Enabled: c.FormValue("logger.enabled") == "true",
			Level:   c.FormValue("logger.level", currentConfig.Logger.Level),
			Format:  c.FormValue("logger.format", currentConfig.Logger.Format),
		},
		Telegram: Telegram{
			Enabled:      c.FormValue("telegram.enabled") == "true",
			Token:        currentConfig.Telegram.Token,
			AllowedUsers: parseStringSlice(c.FormValue("telegram.allowedUsers")),
		},
		Watcher: Watcher{
			Enabled:    c.FormValue("watcher.enabled") == "true",
			Path:       c.FormValue("watcher.path", currentConfig.Watcher.Path),
			DebounceMs: parseInt(c.FormValue("watcher.debounce_ms"), currentConfig.Watcher.DebounceMs),
		},
		Tags: Tags{
			WriteOnUpdate: c.FormValue("tags.write_on_update") == "true",
		},
		Metrics: currentConfig.Metrics,
	}
	if token := c.FormValue("telegram.token"); token != "" && token != "<redacted>" {
		newConfig.Telegram.Token = token
	}

	if err := Validate(newConfig); err != nil {
		slog.Warn("Rejected configuration update", "error", err)
		return c.Render("toast/toastErr", fiber.Map{
			"Msg": err.Error(),
		})
	}

	h.configManager.Update(newConfig)
	slog.Info("Configuration updated in memory")

	// Saving may fail in containerized environments
	if err := h.configManager.Save(h.configManager.Path()); err != nil {
		slog.Warn("failed to save config to file", "error", err)
	}

	return c.Render("toast/toastOk", fiber.Map{
		"Msg": "Configuration updated successfully!",
	})
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for part := range strings.SplitSeq(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (h *Handler) GetConfigForm(c *fiber.Ctx) error {
	slog.Debug("GetConfigForm handler called")
	return c.Render("config/config_form", fiber.Map{
		"Config": h.configManager.redactedCfg(),
	})
}

// GetConfig returns the current configuration in the requested format.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	format := c.Query("fmt", "yaml")
	slog.Debug("GetConfig handler called", "format", format)

	switch format {
	case "yaml":
		c.Set("Content-Type", "text/yaml")
		return c.SendString(h.configManager.GetYAML())
	case "json":
		c.Set("Content-Type", "application/json")
		return c.SendString(h.configManager.GetJSON())
	default:
		return c.Status(fiber.StatusBadRequest).SendString("Invalid format. Use 'json' or 'yaml'")
	}
}
