package adding

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/contre95/songshelf/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the adding feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the adding feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true" || strings.Contains(c.Get("Accept"), "text/html")
}

// fail answers HTMX requests with an error toast and API clients with a status code.
func fail(c *fiber.Ctx, err error, msg string) error {
	if isHTMX(c) {
		return c.Render("toast/toastErr", fiber.Map{
			"Msg": fmt.Sprintf("%s: %v", msg, err),
		})
	}
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, music.ErrInvalidSong):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrQueueEmpty):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// parseInput reads the add form from a JSON body or from form values.
func parseInput(c *fiber.Ctx) (SongInput, error) {
	var input SongInput
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		if err := c.BodyParser(&input); err != nil {
			return input, fmt.Errorf("%w: %v", music.ErrInvalidSong, err)
		}
		return input, nil
	}

	input = SongInput{
		Title:    c.FormValue("title"),
		Artist:   c.FormValue("artist"),
		Album:    c.FormValue("album"),
		Genre:    c.FormValue("genre"),
		FilePath: c.FormValue("file_path"),
	}
	var err error
	if input.Year, err = optionalInt(c.FormValue("year")); err != nil {
		return input, fmt.Errorf("%w: year must be a number", music.ErrInvalidSong)
	}
	if input.Duration, err = optionalInt(c.FormValue("duration")); err != nil {
		return input, fmt.Errorf("%w: duration must be a number of seconds", music.ErrInvalidSong)
	}
	return input, nil
}

func optionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// Enqueue queues the submitted song for addition.
func (h *Handler) Enqueue(c *fiber.Ctx) error {
	slog.Debug("Enqueue handler called")
	input, err := parseInput(c)
	if err != nil {
		return fail(c, err, "Invalid song")
	}
	song, err := h.service.Enqueue(c.Context(), input)
	if err != nil {
		return fail(c, err, "Failed to queue song")
	}

	if isHTMX(c) {
		c.Set("HX-Trigger", "queueUpdated")
		return c.Render("toast/toastOk", fiber.Map{
			"Msg": fmt.Sprintf("Added %s to the pending queue (%d pending)", song.String(), h.service.Len()),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(song)
}

// GetQueue renders the pending queue.
func (h *Handler) GetQueue(c *fiber.Ctx) error {
	slog.Debug("GetQueue handler called")
	pending := h.service.Pending()
	if isHTMX(c) {
		return c.Render("adding/queue", fiber.Map{
			"Songs": pending,
		})
	}
	return c.JSON(fiber.Map{
		"pending": pending,
		"count":   len(pending),
	})
}

// GetQueueCount returns the number of pending songs.
func (h *Handler) GetQueueCount(c *fiber.Ctx) error {
	return c.SendString(strconv.Itoa(h.service.Len()))
}

// Peek returns the song at the front of the queue.
func (h *Handler) Peek(c *fiber.Ctx) error {
	song, err := h.service.Peek()
	if err != nil {
		return fail(c, err, "Nothing to peek")
	}
	if isHTMX(c) {
		return c.Render("toast/toastInfo", fiber.Map{
			"Msg": "Next up: " + song.String(),
		})
	}
	return c.JSON(song)
}

// Dequeue discards the song at the front of the queue.
func (h *Handler) Dequeue(c *fiber.Ctx) error {
	song, err := h.service.Dequeue()
	if err != nil {
		return fail(c, err, "Nothing to remove")
	}
	if isHTMX(c) {
		c.Set("HX-Trigger", "queueUpdated")
		return c.Render("toast/toastOk", fiber.Map{
			"Msg": "Removed " + song.String() + " from the pending queue",
		})
	}
	return c.JSON(song)
}

// Clear empties the pending queue.
func (h *Handler) Clear(c *fiber.Ctx) error {
	n := h.service.Clear()
	if isHTMX(c) {
		c.Set("HX-Trigger", "queueUpdated")
		return c.Render("toast/toastOk", fiber.Map{
			"Msg": fmt.Sprintf("Dropped %d pending songs", n),
		})
	}
	return c.JSON(fiber.Map{"dropped": n})
}

// ProcessAll inserts every pending song.
func (h *Handler) ProcessAll(c *fiber.Ctx) error {
	slog.Debug("ProcessAll handler called")
	result := h.service.ProcessAll(c.Context())
	if isHTMX(c) {
		c.Set("HX-Trigger", "queueUpdated, libraryUpdated")
		return c.Render("adding/process_result", fiber.Map{
			"Result": result,
		})
	}
	return c.JSON(result)
}
