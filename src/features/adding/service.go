package adding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contre95/songshelf/src/music"
	"github.com/go-playground/validator/v10"
)

// SongInput is the add form as submitted by a user.
type SongInput struct {
	Title    string `json:"title" validate:"required,max=500"`
	Artist   string `json:"artist" validate:"required,max=500"`
	Album    string `json:"album" validate:"max=500"`
	Genre    string `json:"genre"`
	Year     int    `json:"year" validate:"gte=0,lte=9999"`
	Duration int    `json:"duration" validate:"gte=0"`
	FilePath string `json:"file_path" validate:"max=1000"`
}

// Failure records why a pending song could not be inserted.
type Failure struct {
	Song   *music.Song `json:"song"`
	Reason string      `json:"reason"`
}

// ProcessResult summarizes a ProcessAll run.
type ProcessResult struct {
	Processed int           `json:"processed"`
	Failed    int           `json:"failed"`
	Added     []*music.Song `json:"added"`
	Failures  []Failure     `json:"failures"`
}

// Service is the domain service for the adding feature.
type Service struct {
	queue     Queue
	library   music.Library
	recorder  music.OperationRecorder
	validator *validator.Validate
}

// NewService creates a new adding service.
func NewService(queue Queue, library music.Library, recorder music.OperationRecorder) *Service {
	return &Service{
		queue:     queue,
		library:   library,
		recorder:  music.RecorderOrNop(recorder),
		validator: validator.New(),
	}
}

// Enqueue validates the form input and places the resulting song at the back
// of the pending queue. Nothing is queued when validation fails.
func (s *Service) Enqueue(ctx context.Context, input SongInput) (*music.Song, error) {
	slog.Debug("Enqueue service called", "title", input.Title, "artist", input.Artist)
	input.Title = strings.TrimSpace(input.Title)
	input.Artist = strings.TrimSpace(input.Artist)
	input.Album = strings.TrimSpace(input.Album)
	input.Genre = strings.TrimSpace(input.Genre)
	input.FilePath = strings.TrimSpace(input.FilePath)

	if err := s.validator.Struct(input); err != nil {
		slog.Warn("Rejected song input", "error", err)
		err = fmt.Errorf("%w: %s", music.ErrInvalidSong, describeValidation(err))
		s.recorder.RecordOperation("enqueue", err)
		return nil, err
	}

	song := music.NewSong(input.Title, input.Artist, input.Album)
	song.Genre = input.Genre
	song.Year = input.Year
	song.Duration = input.Duration
	song.FilePath = input.FilePath
	return song, s.EnqueueSong(ctx, song)
}

// EnqueueSong places an already built song at the back of the pending queue.
func (s *Service) EnqueueSong(ctx context.Context, song *music.Song) error {
	if err := song.Validate(); err != nil {
		s.recorder.RecordOperation("enqueue", err)
		return err
	}
	s.queue.Enqueue(song)
	s.recorder.RecordOperation("enqueue", nil)
	slog.Info("Song queued for addition", "song", song.String(), "pending", s.queue.Len())
	return nil
}

// Peek returns the next song to be inserted.
func (s *Service) Peek() (*music.Song, error) {
	song, ok := s.queue.Peek()
	if !ok {
		return nil, ErrQueueEmpty
	}
	return song.Clone(), nil
}

// Dequeue drops the next pending song without inserting it.
func (s *Service) Dequeue() (*music.Song, error) {
	song, ok := s.queue.Dequeue()
	if !ok {
		return nil, ErrQueueEmpty
	}
	slog.Info("Pending song discarded", "song", song.String())
	return song, nil
}

// Pending returns the queued songs, front first.
func (s *Service) Pending() []*music.Song {
	items := s.queue.Items()
	out := make([]*music.Song, len(items))
	for i, song := range items {
		out[i] = song.Clone()
	}
	return out
}

// Len returns the number of pending songs.
func (s *Service) Len() int {
	return s.queue.Len()
}

// Clear drops every pending song and returns how many were dropped.
func (s *Service) Clear() int {
	n := s.queue.Len()
	s.queue.Clear()
	slog.Info("Pending queue cleared", "dropped", n)
	return n
}

// ProcessAll inserts every pending song in arrival order. A failed insert is
// recorded and processing continues with the next song.
func (s *Service) ProcessAll(ctx context.Context) ProcessResult {
	slog.Debug("ProcessAll service called", "pending", s.queue.Len())
	result := ProcessResult{Added: []*music.Song{}, Failures: []Failure{}}

	for {
		if err := ctx.Err(); err != nil {
			slog.Warn("ProcessAll interrupted", "error", err, "remaining", s.queue.Len())
			break
		}
		song, ok := s.queue.Dequeue()
		if !ok {
			break
		}
		if err := s.library.AddSong(ctx, song); err != nil {
			slog.Error("Failed to add pending song", "song", song.String(), "error", err)
			s.recorder.RecordOperation("add", err)
			result.Failed++
			result.Failures = append(result.Failures, Failure{Song: song, Reason: err.Error()})
			continue
		}
		s.recorder.RecordOperation("add", nil)
		result.Processed++
		result.Added = append(result.Added, song)
	}

	slog.Info("Pending queue processed", "processed", result.Processed, "failed", result.Failed)
	return result
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s is longer than %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, ", ")
}
