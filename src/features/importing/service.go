package importing

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/contre95/songshelf/src/music"
)

// UnknownArtist is stored when a file carries no artist tag.
const UnknownArtist = "Unknown Artist"

// SupportedExtensions lists the audio formats the importer reads.
var SupportedExtensions = []string{".mp3", ".flac", ".m4a", ".ogg"}

var ErrNotADirectory = errors.New("not a directory")

// IsSupportedFile reports whether the path has a supported audio extension.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// TagReader reads song metadata from an audio file.
type TagReader interface {
	ReadFileTags(ctx context.Context, path string) (*music.Song, error)
}

// Enqueuer places songs on the pending-additions queue.
type Enqueuer interface {
	EnqueueSong(ctx context.Context, song *music.Song) error
}

// ImportStats contains statistics about a directory import
type ImportStats struct {
	Queued  int `json:"queued"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Service is the domain service for the importing feature.
type Service struct {
	tagReader TagReader
	queue     Enqueuer
}

// NewService creates a new importing service.
func NewService(tagReader TagReader, queue Enqueuer) *Service {
	return &Service{tagReader: tagReader, queue: queue}
}

// ImportFile reads the file's tags and enqueues the resulting song.
func (s *Service) ImportFile(ctx context.Context, path string) (*music.Song, error) {
	slog.Debug("ImportFile service called", "path", path)
	song, err := s.tagReader.ReadFileTags(ctx, path)
	if err != nil {
		slog.Error("Failed to read tags", "path", path, "error", err)
		return nil, fmt.Errorf("reading tags of %s: %w", path, err)
	}
	if strings.TrimSpace(song.Title) == "" {
		song.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if strings.TrimSpace(song.Artist) == "" {
		song.Artist = UnknownArtist
	}
	song.FilePath = path
	if song.CreatedAt.IsZero() {
		song.CreatedAt = time.Now()
	}
	if err := s.queue.EnqueueSong(ctx, song); err != nil {
		slog.Error("Failed to enqueue imported file", "path", path, "error", err)
		return nil, err
	}
	slog.Info("File imported to queue", "path", path, "song", song.String())
	return song, nil
}

// ImportDirectory walks dir recursively and imports every supported file.
// Unreadable files are counted as errors and the walk continues.
func (s *Service) ImportDirectory(ctx context.Context, dir string) (ImportStats, error) {
	slog.Debug("ImportDirectory service called", "path", dir)
	var stats ImportStats
	info, err := os.Stat(dir)
	if err != nil {
		return stats, err
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable entry", "path", path, "error", err)
			stats.Errors++
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		if !IsSupportedFile(path) {
			stats.Skipped++
			return nil
		}
		if _, err := s.ImportFile(ctx, path); err != nil {
			stats.Errors++
			return nil
		}
		stats.Queued++
		return nil
	})
	slog.Info("Directory import finished", "path", dir, "queued", stats.Queued, "skipped", stats.Skipped, "errors", stats.Errors)
	return stats, err
}

// Run imports files announced on events until the channel closes or ctx is
// cancelled.
func (s *Service) Run(ctx context.Context, events <-chan FileEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.EventType != FileCreated {
				continue
			}
			if _, err := s.ImportFile(ctx, ev.Path); err != nil {
				slog.Warn("Watched file not imported", "path", ev.Path, "error", err)
			}
		}
	}
}
