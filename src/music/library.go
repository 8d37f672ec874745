package music

import (
	"context"
	"errors"
)

var (
	ErrSongNotFound  = errors.New("song not found")
	ErrInvalidSong   = errors.New("invalid song")
	ErrDuplicateSong = errors.New("song id already exists")
)

// Library is the record store for songs.
// It's our primary repository interface for the library domain.
type Library interface {
	// AddSong inserts the song, assigning an ID and creation time when missing.
	AddSong(ctx context.Context, song *Song) error
	// UpdateSong overwrites the stored song with the same ID. Returns ErrSongNotFound if absent.
	UpdateSong(ctx context.Context, song *Song) error
	// DeleteSong removes the song with the given ID. Returns ErrSongNotFound if absent.
	DeleteSong(ctx context.Context, id string) error
	// GetSong returns nil, nil when the song does not exist.
	GetSong(ctx context.Context, id string) (*Song, error)
	// GetSongs returns every song ordered by title then artist.
	GetSongs(ctx context.Context) ([]*Song, error)
	// SearchSongs matches the query as a substring of title, artist or album.
	SearchSongs(ctx context.Context, query string) ([]*Song, error)
	GetSongsCount(ctx context.Context) (int, error)
}

// LibraryStats provides aggregate figures about the stored songs.
type LibraryStats interface {
	GetGenreDistribution(ctx context.Context) (map[string]int, error)
	GetYearDistribution(ctx context.Context) (map[string]int, error)
	GetTotalDuration(ctx context.Context) (int, error)
	GetSongsCount(ctx context.Context) (int, error)
}
