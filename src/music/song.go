package music

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Song is a single record of the library catalog.
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Album     string    `json:"album,omitempty"`
	Duration  int       `json:"duration"` // seconds
	FilePath  string    `json:"file_path,omitempty"`
	Genre     string    `json:"genre,omitempty"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSong creates a song with the creation timestamp set to now.
func NewSong(title, artist, album string) *Song {
	return &Song{
		Title:     title,
		Artist:    artist,
		Album:     album,
		CreatedAt: time.Now(),
	}
}

// NewSongID generates a new random song identifier.
func NewSongID() string {
	return uuid.New().String()
}

// Validate validates the song fields, normalizing whitespace on the way.
func (s *Song) Validate() error {
	s.Title = strings.TrimSpace(s.Title)
	s.Artist = strings.TrimSpace(s.Artist)
	s.Album = strings.TrimSpace(s.Album)
	s.Genre = strings.TrimSpace(s.Genre)

	if s.Title == "" {
		return fmt.Errorf("%w: song title cannot be empty", ErrInvalidSong)
	}
	if n := utf8.RuneCountInString(s.Title); n > 500 {
		return fmt.Errorf("%w: title cannot exceed 500 characters, got %d", ErrInvalidSong, n)
	}
	if s.Artist == "" {
		return fmt.Errorf("%w: song artist cannot be empty: title -> %s", ErrInvalidSong, s.Title)
	}
	if n := utf8.RuneCountInString(s.Artist); n > 500 {
		return fmt.Errorf("%w: artist cannot exceed 500 characters, got %d", ErrInvalidSong, n)
	}
	if n := utf8.RuneCountInString(s.Album); n > 500 {
		return fmt.Errorf("%w: album cannot exceed 500 characters, got %d", ErrInvalidSong, n)
	}
	if n := utf8.RuneCountInString(s.FilePath); n > 1000 {
		return fmt.Errorf("%w: file path cannot exceed 1000 characters, got %d", ErrInvalidSong, n)
	}
	if s.Duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative, got %d", ErrInvalidSong, s.Duration)
	}
	if s.Year < 0 || s.Year > 9999 {
		return fmt.Errorf("%w: year out of range, got %d", ErrInvalidSong, s.Year)
	}
	s.Genre = truncateRunes(s.Genre, maxGenreLength)
	return nil
}

const maxGenreLength = 100

// truncateRunes cuts s to at most n characters without splitting one.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// String renders the song the way the listing shows it.
func (s *Song) String() string {
	return s.Title + " - " + s.Artist
}

// Clone returns a detached copy of the song.
func (s *Song) Clone() *Song {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// DurationString formats the duration as m:ss.
func (s *Song) DurationString() string {
	if s.Duration <= 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", s.Duration/60, s.Duration%60)
}

// Details renders one "field : value" line per populated field.
func (s *Song) Details() string {
	var b strings.Builder
	line := func(k, v string) { fmt.Fprintf(&b, "%-12s : %s\n", k, v) }
	line("ID", s.ID)
	line("Title", s.Title)
	line("Artist", s.Artist)
	if s.Album != "" {
		line("Album", s.Album)
	}
	line("Duration", s.DurationString())
	if s.Genre != "" {
		line("Genre", s.Genre)
	}
	if s.Year != 0 {
		line("Year", strconv.Itoa(s.Year))
	}
	if s.FilePath != "" {
		line("File", s.FilePath)
	}
	if !s.CreatedAt.IsZero() {
		line("Created", s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return b.String()
}
