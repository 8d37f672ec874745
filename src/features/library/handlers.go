package library

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contre95/songshelf/src/music"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the library feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new handler for the library feature.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Pagination represents pagination information
type Pagination struct {
	Page       int
	Limit      int
	TotalCount int
	TotalPages int
	NextPage   int
	PrevPage   int
	HasNext    bool
	HasPrev    bool
}

// NewPagination creates a new Pagination instance with calculated values
func NewPagination(page, limit, totalCount int) Pagination {
	totalPages := (totalCount + limit - 1) / limit

	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		NextPage:   page + 1,
		PrevPage:   page - 1,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// paginate returns the songs of the requested page.
func paginate(songs []*music.Song, page, limit int) []*music.Song {
	start := (page - 1) * limit
	if start >= len(songs) {
		return []*music.Song{}
	}
	end := min(start+limit, len(songs))
	return songs[start:end]
}

func wantsHTML(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true" || strings.Contains(c.Get("Accept"), "text/html")
}

// GetSongs renders the title-ordered listing.
func (h *Handler) GetSongs(c *fiber.Ctx) error {
	slog.Debug("GetSongs handler called")

	page := max(c.QueryInt("page", 1), 1)
	limit := c.QueryInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}

	songs, err := h.service.ListSongs(c.Context())
	if err != nil {
		slog.Error("Error loading songs", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error loading songs")
	}

	pagination := NewPagination(page, limit, len(songs))
	pageSongs := paginate(songs, page, limit)

	if wantsHTML(c) {
		return c.Render("library/songs_list", fiber.Map{
			"Songs":      pageSongs,
			"Pagination": pagination,
		})
	}

	return c.JSON(fiber.Map{
		"songs": pageSongs,
		"pagination": fiber.Map{
			"page":       pagination.Page,
			"limit":      pagination.Limit,
			"totalCount": pagination.TotalCount,
			"totalPages": pagination.TotalPages,
		},
	})
}

// GetSong is the handler for getting a single song.
func (h *Handler) GetSong(c *fiber.Ctx) error {
	id := c.Params("id")
	slog.Debug("GetSong handler called", "id", id)
	song, err := h.service.GetSong(c.Context(), id)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, music.ErrSongNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if wantsHTML(c) {
		return c.Render("library/song_detail", fiber.Map{"Song": song})
	}
	return c.JSON(song)
}

// FindByTitle looks a song up by its exact title.
func (h *Handler) FindByTitle(c *fiber.Ctx) error {
	title := c.Query("title")
	slog.Debug("FindByTitle handler called", "title", title)
	song, err := h.service.FindByTitle(c.Context(), title)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, music.ErrSongNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if wantsHTML(c) {
		return c.Render("library/song_detail", fiber.Map{"Song": song})
	}
	return c.JSON(song)
}

// SearchSongs is the handler for the search box.
func (h *Handler) SearchSongs(c *fiber.Ctx) error {
	query := c.Query("q")
	slog.Debug("SearchSongs handler called", "query", query)
	songs, err := h.service.SearchSongs(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Error searching songs")
	}
	if wantsHTML(c) {
		return c.Render("library/songs_list", fiber.Map{
			"Songs":      songs,
			"Query":      query,
			"Pagination": NewPagination(1, max(len(songs), 1), len(songs)),
		})
	}
	return c.JSON(songs)
}

// GetSongsCount returns the count of songs in the library.
func (h *Handler) GetSongsCount(c *fiber.Ctx) error {
	slog.Debug("GetSongsCount handler called")
	count, err := h.service.GetSongsCount(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Error loading songs count")
	}
	return c.SendString(fmt.Sprintf("%d", count))
}
