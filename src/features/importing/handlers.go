package importing

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the importing feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the importing feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true" || strings.Contains(c.Get("Accept"), "text/html")
}

// ImportDirectory is the handler for importing a directory.
func (h *Handler) ImportDirectory(c *fiber.Ctx) error {
	type ImportPathRequest struct {
		DirectoryPath string `json:"directoryPath" form:"directoryPath"`
	}
	var req ImportPathRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cannot parse request body",
		})
	}
	if strings.TrimSpace(req.DirectoryPath) == "" {
		if isHTMX(c) {
			return c.Render("toast/toastErr", fiber.Map{"Msg": "Directory path is required"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "directoryPath is required"})
	}

	stats, err := h.service.ImportDirectory(c.Context(), req.DirectoryPath)
	if err != nil {
		slog.Error("Error importing directory", "error", err)
		if isHTMX(c) {
			return c.Render("toast/toastErr", fiber.Map{
				"Msg": fmt.Sprintf("Failed to import directory: %v", err),
			})
		}
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrNotADirectory) || errors.Is(err, os.ErrNotExist) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if isHTMX(c) {
		c.Set("HX-Trigger", "queueUpdated")
		return c.Render("toast/toastInfo", fiber.Map{
			"Msg": fmt.Sprintf("Queued %d files (%d skipped, %d errors)", stats.Queued, stats.Skipped, stats.Errors),
		})
	}
	return c.JSON(stats)
}

// GetDirectoryForm renders the directory import form.
func (h *Handler) GetDirectoryForm(c *fiber.Ctx) error {
	return c.Render("importing/directory_form", fiber.Map{
		"Extensions": strings.Join(SupportedExtensions, " "),
	})
}

// ImportFile queues a single audio file.
func (h *Handler) ImportFile(c *fiber.Ctx) error {
	var req struct {
		FilePath string `json:"filePath" form:"filePath"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot parse request body"})
	}
	path := strings.TrimSpace(req.FilePath)
	if !IsSupportedFile(path) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unsupported file, expected one of %s", strings.Join(SupportedExtensions, " ")),
		})
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file not found: " + path})
	}

	song, err := h.service.ImportFile(c.Context(), path)
	if err != nil {
		if isHTMX(c) {
			return c.Render("toast/toastErr", fiber.Map{"Msg": fmt.Sprintf("Failed to import file: %v", err)})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if isHTMX(c) {
		c.Set("HX-Trigger", "queueUpdated")
		return c.Render("toast/toastOk", fiber.Map{"Msg": "Queued " + song.String()})
	}
	return c.Status(fiber.StatusCreated).JSON(song)
}
