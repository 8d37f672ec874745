package editing

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/contre95/songshelf/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the editing feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the editing feature.
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
	case errors.Is(err, music.ErrInvalidSong):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// parseUpdate builds an update from a JSON body, or from the form fields that
// were submitted.
func parseUpdate(c *fiber.Ctx) (music.SongUpdate, error) {
	var upd music.SongUpdate
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		if err := c.BodyParser(&upd); err != nil {
			return upd, fmt.Errorf("%w: %v", music.ErrInvalidSong, err)
		}
		return upd, nil
	}

	args := c.Request().PostArgs()
	str := func(key string) *string {
		if !args.Has(key) {
			return nil
		}
		v := string(args.Peek(key))
		return &v
	}
	num := func(key string) (*int, error) {
		s := str(key)
		if s == nil {
			return nil, nil
		}
		trimmed := strings.TrimSpace(*s)
		if trimmed == "" {
			zero := 0
			return &zero, nil
		}
		v, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", music.ErrInvalidSong, key)
		}
		return &v, nil
	}

	upd.Title = str("title")
	upd.Artist = str("artist")
	upd.Album = str("album")
	upd.Genre = str("genre")
	upd.FilePath = str("file_path")
	var err error
	if upd.Year, err = num("year"); err != nil {
		return upd, err
	}
	if upd.Duration, err = num("duration"); err != nil {
		return upd, err
	}
	return upd, nil
}

// GetEditForm renders the edit form, or returns the song for API clients.
func (h *Handler) GetEditForm(c *fiber.Ctx) error {
	id := c.Params("id")
	slog.Debug("GetEditForm handler called", "id", id)
	song, err := h.service.GetSong(c.Context(), id)
	if err != nil {
		return fail(c, err, "Cannot edit song")
	}
	if isHTMX(c) {
		return c.Render("editing/edit_form", fiber.Map{"Song": song})
	}
	return c.JSON(song)
}

// UpdateSong applies the submitted fields.
func (h *Handler) UpdateSong(c *fiber.Ctx) error {
	id := c.Params("id")
	slog.Debug("UpdateSong handler called", "id", id)
	upd, err := parseUpdate(c)
	if err != nil {
		return fail(c, err, "Invalid update")
	}
	song, err := h.service.UpdateSong(c.Context(), id, upd)
	if err != nil {
		return fail(c, err, "Failed to update song")
	}
	if isHTMX(c) {
		c.Set("HX-Trigger", "libraryUpdated")
		return c.Render("toast/toastOk", fiber.Map{
			"Msg": "Updated " + song.String(),
		})
	}
	return c.JSON(song)
}

// RefreshSong reloads one entry from the store.
func (h *Handler) RefreshSong(c *fiber.Ctx) error {
	id := c.Params("id")
	song, err := h.service.RefreshSong(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to refresh song")
	}
	if isHTMX(c) {
		return c.Render("editing/edit_form", fiber.Map{"Song": song})
	}
	return c.JSON(song)
}

// Reload rebuilds the id index from the store.
func (h *Handler) Reload(c *fiber.Ctx) error {
	n, err := h.service.Load(c.Context())
	if err != nil {
		return fail(c, err, "Failed to load songs")
	}
	if isHTMX(c) {
		return c.Render("toast/toastOk", fiber.Map{
			"Msg": fmt.Sprintf("Loaded %d songs for editing", n),
		})
	}
	return c.JSON(fiber.Map{"loaded": n})
}
