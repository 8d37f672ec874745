package editing

import (
	"context"
	"log/slog"

	"github.com/contre95/songshelf/src/features/config"
	"github.com/contre95/songshelf/src/music"
)

// Index is the library with its id index.
type Index interface {
	music.Library
	Lookup(ctx context.Context, id string) (*music.Song, error)
	Load(ctx context.Context) (int, error)
	Refresh(ctx context.Context, id string) (*music.Song, error)
}

// TagWriter writes song metadata back into the audio file.
type TagWriter interface {
	WriteFileTags(ctx context.Context, filePath string, song *music.Song) error
}

// Service is the domain service for the editing feature.
type Service struct {
	index         Index
	tagWriter     TagWriter
	configManager *config.Manager
	recorder      music.OperationRecorder
}

// NewService creates a new editing service. tagWriter may be nil.
func NewService(index Index, tagWriter TagWriter, cfgManager *config.Manager, recorder music.OperationRecorder) *Service {
	return &Service{
		index:         index,
		tagWriter:     tagWriter,
		configManager: cfgManager,
		recorder:      music.RecorderOrNop(recorder),
	}
}

// Load reloads the id index from the store and returns its size.
func (s *Service) Load(ctx context.Context) (int, error) {
	slog.Debug("Load service called")
	n, err := s.index.Load(ctx)
	if err != nil {
		slog.Error("Load failed", "error", err)
		return 0, err
	}
	slog.Info("ID index loaded", "songs", n)
	return n, nil
}

// GetSong returns the song with the given ID from the id index.
func (s *Service) GetSong(ctx context.Context, id string) (*music.Song, error) {
	song, err := s.index.Lookup(ctx, id)
	if err != nil {
		slog.Error("GetSong failed", "error", err, "id", id)
		return nil, err
	}
	if song == nil {
		return nil, music.ErrSongNotFound
	}
	return song, nil
}

// UpdateSong applies the provided fields to the song and stores it. An empty
// update succeeds without touching the store.
func (s *Service) UpdateSong(ctx context.Context, id string, upd music.SongUpdate) (*music.Song, error) {
	slog.Debug("UpdateSong service called", "id", id)
	current, err := s.GetSong(ctx, id)
	if err != nil {
		s.recorder.RecordOperation("update", err)
		return nil, err
	}
	if upd.IsEmpty() {
		slog.Debug("Empty update, nothing to do", "id", id)
		return current, nil
	}

	updated := current.Clone()
	upd.Apply(updated)
	if err := updated.Validate(); err != nil {
		s.recorder.RecordOperation("update", err)
		return nil, err
	}
	if err := s.index.UpdateSong(ctx, updated); err != nil {
		slog.Error("UpdateSong failed", "error", err, "id", id)
		s.recorder.RecordOperation("update", err)
		return nil, err
	}
	s.recorder.RecordOperation("update", nil)
	slog.Info("Song updated", "id", id, "song", updated.String())

	if upd.TagsChanged() {
		s.writeTags(ctx, updated)
	}
	return updated, nil
}

// writeTags mirrors the edit into the audio file when enabled. Failures are
// logged only.
func (s *Service) writeTags(ctx context.Context, song *music.Song) {
	if s.tagWriter == nil || song.FilePath == "" {
		return
	}
	if s.configManager == nil || !s.configManager.Get().Tags.WriteOnUpdate {
		return
	}
	if err := s.tagWriter.WriteFileTags(ctx, song.FilePath, song); err != nil {
		slog.Warn("Failed to write tags to file", "path", song.FilePath, "error", err)
	}
}

// RefreshSong reloads a single entry of the id index from the store.
func (s *Service) RefreshSong(ctx context.Context, id string) (*music.Song, error) {
	slog.Debug("RefreshSong service called", "id", id)
	song, err := s.index.Refresh(ctx, id)
	if err != nil {
		slog.Error("RefreshSong failed", "error", err, "id", id)
		return nil, err
	}
	if song == nil {
		return nil, music.ErrSongNotFound
	}
	return song, nil
}
