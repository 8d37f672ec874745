package library

import (
	"context"
	"log/slog"
	"strings"

	"github.com/contre95/songshelf/src/music"
)

// Catalog is the library plus the ordered title index and the id index.
type Catalog interface {
	music.Library
	Sorted(ctx context.Context) ([]*music.Song, error)
	FindByTitle(ctx context.Context, title string) (*music.Song, error)
	Lookup(ctx context.Context, id string) (*music.Song, error)
}

// Service is the domain service for the library feature.
type Service struct {
	catalog Catalog
}

// NewService creates a new library service.
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// ListSongs returns the songs in ascending title order.
func (s *Service) ListSongs(ctx context.Context) ([]*music.Song, error) {
	slog.Debug("ListSongs service called")
	songs, err := s.catalog.Sorted(ctx)
	if err != nil {
		slog.Error("ListSongs failed", "error", err)
		return nil, err
	}
	slog.Debug("ListSongs completed", "count", len(songs))
	return songs, nil
}

// FindByTitle returns the song with exactly this title.
func (s *Service) FindByTitle(ctx context.Context, title string) (*music.Song, error) {
	slog.Debug("FindByTitle service called", "title", title)
	song, err := s.catalog.FindByTitle(ctx, strings.TrimSpace(title))
	if err != nil {
		slog.Error("FindByTitle failed", "error", err)
		return nil, err
	}
	if song == nil {
		return nil, music.ErrSongNotFound
	}
	return song, nil
}

// GetSong returns a single song by ID.
func (s *Service) GetSong(ctx context.Context, id string) (*music.Song, error) {
	slog.Debug("GetSong service called", "id", id)
	song, err := s.catalog.Lookup(ctx, id)
	if err != nil {
		slog.Error("GetSong failed", "error", err, "id", id)
		return nil, err
	}
	if song == nil {
		return nil, music.ErrSongNotFound
	}
	return song, nil
}

// SearchSongs matches the query against title, artist and album.
func (s *Service) SearchSongs(ctx context.Context, query string) ([]*music.Song, error) {
	slog.Debug("SearchSongs service called", "query", query)
	songs, err := s.catalog.SearchSongs(ctx, strings.TrimSpace(query))
	if err != nil {
		slog.Error("SearchSongs failed", "error", err)
		return nil, err
	}
	slog.Debug("SearchSongs completed", "count", len(songs))
	return songs, nil
}

// GetSongsCount returns the total count of songs in the library.
func (s *Service) GetSongsCount(ctx context.Context) (int, error) {
	slog.Debug("GetSongsCount service called")
	count, err := s.catalog.GetSongsCount(ctx)
	if err != nil {
		slog.Error("GetSongsCount failed", "error", err)
		return 0, err
	}
	return count, nil
}
