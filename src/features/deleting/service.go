package deleting

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/contre95/songshelf/src/music"
)

// Catalog is the library with its id index.
type Catalog interface {
	music.Library
	Lookup(ctx context.Context, id string) (*music.Song, error)
}

// Failure records why a staged song could not be deleted.
type Failure struct {
	Song   *music.Song `json:"song"`
	Reason string      `json:"reason"`
}

// FlushResult summarizes a Flush run.
type FlushResult struct {
	Deleted  int           `json:"deleted"`
	Failed   int           `json:"failed"`
	Songs    []*music.Song `json:"songs"`
	Failures []Failure     `json:"failures"`
}

// Service is the domain service for the deleting feature. Deletions are
// staged on a stack first and only reach the store when finalized.
type Service struct {
	stack    Stack
	catalog  Catalog
	recorder music.OperationRecorder

	mu      sync.Mutex
	history []*music.Song
}

// NewService creates a new deleting service.
func NewService(stack Stack, catalog Catalog, recorder music.OperationRecorder) *Service {
	return &Service{
		stack:    stack,
		catalog:  catalog,
		recorder: music.RecorderOrNop(recorder),
	}
}

// Stage looks the song up and pushes it on the deletion stack.
func (s *Service) Stage(ctx context.Context, id string) (*music.Song, error) {
	slog.Debug("Stage service called", "id", id)
	s.mu.Lock()
	defer s.mu.Unlock()

	song, err := s.catalog.Lookup(ctx, id)
	if err != nil {
		slog.Error("Stage failed", "error", err, "id", id)
		s.recorder.RecordOperation("stage", err)
		return nil, err
	}
	if song == nil {
		s.recorder.RecordOperation("stage", music.ErrSongNotFound)
		return nil, music.ErrSongNotFound
	}
	if s.isStaged(id) {
		s.recorder.RecordOperation("stage", ErrAlreadyStaged)
		return nil, ErrAlreadyStaged
	}
	s.stack.Push(song)
	s.recorder.RecordOperation("stage", nil)
	slog.Info("Song staged for deletion", "song", song.String(), "staged", s.stack.Len())
	return song.Clone(), nil
}

// Undo pops the most recently staged song. The store is not touched.
func (s *Service) Undo() (*music.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song, ok := s.stack.Pop()
	if !ok {
		return nil, ErrNothingStaged
	}
	s.recorder.RecordOperation("undo", nil)
	slog.Info("Staged deletion undone", "song", song.String())
	return song.Clone(), nil
}

// CommitLatest deletes the most recently staged song from the store. On a
// store failure the song stays staged, unless it no longer exists.
func (s *Service) CommitLatest(ctx context.Context) (*music.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song, ok := s.stack.Pop()
	if !ok {
		return nil, ErrNothingStaged
	}
	if err := s.delete(ctx, song); err != nil {
		if !errors.Is(err, music.ErrSongNotFound) {
			s.stack.Push(song)
		}
		return nil, err
	}
	return song.Clone(), nil
}

// Flush finalizes every staged deletion, most recent first, continuing past
// failures. Songs that failed for a reason other than being gone stay staged.
func (s *Service) Flush(ctx context.Context) FlushResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := FlushResult{Songs: []*music.Song{}, Failures: []Failure{}}
	var retry []*music.Song
	for {
		song, ok := s.stack.Pop()
		if !ok {
			break
		}
		if err := s.delete(ctx, song); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, Failure{Song: song.Clone(), Reason: err.Error()})
			if !errors.Is(err, music.ErrSongNotFound) {
				retry = append(retry, song)
			}
			continue
		}
		result.Deleted++
		result.Songs = append(result.Songs, song.Clone())
	}
	for i := len(retry) - 1; i >= 0; i-- {
		s.stack.Push(retry[i])
	}

	slog.Info("Staged deletions flushed", "deleted", result.Deleted, "failed", result.Failed)
	return result
}

// delete must be called with mu held.
func (s *Service) delete(ctx context.Context, song *music.Song) error {
	if err := s.catalog.DeleteSong(ctx, song.ID); err != nil {
		slog.Error("Failed to delete staged song", "song", song.String(), "error", err)
		s.recorder.RecordOperation("delete", err)
		return err
	}
	s.recorder.RecordOperation("delete", nil)
	s.history = append(s.history, song)
	slog.Info("Song deleted", "song", song.String())
	return nil
}

// DeleteNow removes the song from the store without staging it.
func (s *Service) DeleteNow(ctx context.Context, id string) error {
	slog.Debug("DeleteNow service called", "id", id)
	song, err := s.catalog.Lookup(ctx, id)
	if err != nil {
		return err
	}
	if song == nil {
		s.recorder.RecordOperation("delete", music.ErrSongNotFound)
		return music.ErrSongNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delete(ctx, song)
}

// Staged returns the staged songs, most recent first.
func (s *Service) Staged() []*music.Song {
	items := s.stack.Items()
	out := make([]*music.Song, len(items))
	for i, song := range items {
		out[i] = song.Clone()
	}
	return out
}

// History returns the deleted songs, most recent first.
func (s *Service) History() []*music.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*music.Song, len(s.history))
	for i, song := range s.history {
		out[len(out)-1-i] = song.Clone()
	}
	return out
}

// IsStaged reports whether the song is waiting on the stack.
func (s *Service) IsStaged(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isStaged(id)
}

func (s *Service) isStaged(id string) bool {
	for _, song := range s.stack.Items() {
		if song.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of staged songs.
func (s *Service) Len() int {
	return s.stack.Len()
}
