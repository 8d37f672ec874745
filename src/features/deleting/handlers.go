package deleting

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contre95/songshelf/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the deleting feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the deleting feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true" || strings.Contains(c.Get("Accept"), "text/html")
}

func fail(c *fiber.Ctx, err error, msg string) error {
	if isHTMX(c) {
		return c.Render("toast/toastErr", fiber.Map{
			"Msg": fmt.Sprintf("%s: %v", msg, err),
		})
	}
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, music.ErrSongNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrNothingStaged), errors.Is(err, ErrAlreadyStaged):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func ok(c *fiber.Ctx, msg string, payload any) error {
	if isHTMX(c) {
		c.Set("HX-Trigger", "stackUpdated, libraryUpdated")
		return c.Render("toast/toastOk", fiber.Map{"Msg": msg})
	}
	return c.JSON(payload)
}

// Stage moves a song onto the deletion stack.
func (h *Handler) Stage(c *fiber.Ctx) error {
	id := c.Params("id")
	slog.Debug("Stage handler called", "id", id)
	song, err := h.service.Stage(c.Context(), id)
	if err != nil {
		return fail(c, err, "Cannot stage deletion")
	}
	return ok(c, fmt.Sprintf("Moved %s to the delete stack (%d staged)", song.String(), h.service.Len()), song)
}

// Undo restores the most recently staged song.
func (h *Handler) Undo(c *fiber.Ctx) error {
	song, err := h.service.Undo()
	if err != nil {
		return fail(c, err, "Nothing to undo")
	}
	return ok(c, "Restored "+song.String(), song)
}

// Commit deletes the most recently staged song.
func (h *Handler) Commit(c *fiber.Ctx) error {
	song, err := h.service.CommitLatest(c.Context())
	if err != nil {
		return fail(c, err, "Failed to delete")
	}
	return ok(c, "Deleted "+song.String(), song)
}

// Flush deletes every staged song.
func (h *Handler) Flush(c *fiber.Ctx) error {
	result := h.service.Flush(c.Context())
	if isHTMX(c) {
		c.Set("HX-Trigger", "stackUpdated, libraryUpdated")
		return c.Render("deleting/flush_result", fiber.Map{"Result": result})
	}
	return c.JSON(result)
}

// GetStaged renders the deletion stack.
func (h *Handler) GetStaged(c *fiber.Ctx) error {
	staged := h.service.Staged()
	if isHTMX(c) {
		return c.Render("deleting/staged", fiber.Map{"Songs": staged})
	}
	return c.JSON(fiber.Map{"staged": staged, "count": len(staged)})
}

// GetHistory renders the songs deleted in this session.
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	history := h.service.History()
	if isHTMX(c) {
		return c.Render("deleting/history", fiber.Map{"Songs": history})
	}
	return c.JSON(history)
}

// DeleteNow removes a song immediately.
func (h *Handler) DeleteNow(c *fiber.Ctx) error {
	id := c.Params("id")
	slog.Debug("DeleteNow handler called", "id", id)
	if err := h.service.DeleteNow(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete")
	}
	if isHTMX(c) {
		c.Set("HX-Trigger", "libraryUpdated")
		return c.Render("toast/toastOk", fiber.Map{"Msg": "Song deleted"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
