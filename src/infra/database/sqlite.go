package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contre95/songshelf/src/music"
	"github.com/mattn/go-sqlite3"
)

// SqliteLibrary is a SQLite implementation of the music.Library interface.
type SqliteLibrary struct {
	db *sql.DB
}

// NewSqliteLibrary opens the database file and makes sure the schema exists.
func NewSqliteLibrary(path string) (*SqliteLibrary, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	lib := &SqliteLibrary{db: db}
	if err := lib.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return lib, nil
}

// Close releases the underlying database handle.
func (d *SqliteLibrary) Close() error {
	return d.db.Close()
}

// InitSchema creates the songs table. Safe to call more than once.
func (d *SqliteLibrary) InitSchema(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT,
			duration INTEGER DEFAULT 0,
			file_path TEXT,
			genre TEXT,
			year INTEGER,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_songs_title ON songs(title);
		CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist);
	`)
	if err != nil {
		return fmt.Errorf("failed to create songs table: %w", err)
	}
	return nil
}

const songColumns = `id, title, artist, album, duration, file_path, genre, year, created_at`

// AddSong adds a song to the database.
func (d *SqliteLibrary) AddSong(ctx context.Context, song *music.Song) error {
	if err := song.Validate(); err != nil {
		slog.Error("AddSong: validation failed", "error", err, "title", song.Title)
		return err
	}
	if song.ID == "" {
		song.ID = music.NewSongID()
	}
	if song.CreatedAt.IsZero() {
		song.CreatedAt = time.Now()
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO songs (`+songColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, song.ID, song.Title, song.Artist, song.Album, song.Duration, song.FilePath,
		song.Genre, song.Year, song.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			slog.Warn("AddSong: duplicate id", "songID", song.ID)
			return fmt.Errorf("%w: %s", music.ErrDuplicateSong, song.ID)
		}
		slog.Error("AddSong failed", "error", err, "songID", song.ID)
		return err
	}
	slog.Debug("Song added", "songID", song.ID, "title", song.Title)
	return nil
}

// UpdateSong updates a song in the database.
func (d *SqliteLibrary) UpdateSong(ctx context.Context, song *music.Song) error {
	if err := song.Validate(); err != nil {
		slog.Error("UpdateSong: validation failed", "error", err, "songID", song.ID)
		return err
	}

	res, err := d.db.ExecContext(ctx, `
		UPDATE songs
		SET title = ?, artist = ?, album = ?, duration = ?, file_path = ?, genre = ?, year = ?
		WHERE id = ?
	`, song.Title, song.Artist, song.Album, song.Duration, song.FilePath, song.Genre, song.Year, song.ID)
	if err != nil {
		slog.Error("UpdateSong failed", "error", err, "songID", song.ID)
		return err
	}
	return expectOneRow(res, song.ID)
}

// DeleteSong deletes a song from the database.
func (d *SqliteLibrary) DeleteSong(ctx context.Context, id string) error {
	slog.Debug("DeleteSong called", "songID", id)
	res, err := d.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		slog.Error("DeleteSong failed", "error", err, "songID", id)
		return err
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", music.ErrSongNotFound, id)
	}
	return nil
}

// GetSong gets a song from the database.
func (d *SqliteLibrary) GetSong(ctx context.Context, id string) (*music.Song, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ?`, id)
	song, err := scanSong(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return song, nil
}

// GetSongs gets all songs from the database ordered by title then artist.
func (d *SqliteLibrary) GetSongs(ctx context.Context) ([]*music.Song, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+songColumns+` FROM songs ORDER BY title, artist`)
	if err != nil {
		return nil, err
	}
	return collectSongs(rows)
}

// SearchSongs matches the query against title, artist and album.
func (d *SqliteLibrary) SearchSongs(ctx context.Context, query string) ([]*music.Song, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return d.GetSongs(ctx)
	}
	pattern := "%" + escapeLike(query) + "%"
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+songColumns+` FROM songs
		WHERE title LIKE ? ESCAPE '\' OR artist LIKE ? ESCAPE '\' OR album LIKE ? ESCAPE '\'
		ORDER BY title, artist
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return collectSongs(rows)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// GetSongsCount returns the number of stored songs.
func (d *SqliteLibrary) GetSongsCount(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM songs`).Scan(&count)
	return count, err
}

// GetGenreDistribution returns the distribution of songs by genre.
func (d *SqliteLibrary) GetGenreDistribution(ctx context.Context) (map[string]int, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT COALESCE(NULLIF(genre, ''), 'Unknown') AS g, COUNT(*)
		FROM songs
		GROUP BY g
	`)
	if err != nil {
		return nil, err
	}
	return collectDistribution(rows)
}

// GetYearDistribution returns the distribution of songs by year.
func (d *SqliteLibrary) GetYearDistribution(ctx context.Context) (map[string]int, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT CASE WHEN year IS NULL OR year = 0 THEN 'Unknown' ELSE CAST(year AS TEXT) END AS y, COUNT(*)
		FROM songs
		GROUP BY y
	`)
	if err != nil {
		return nil, err
	}
	return collectDistribution(rows)
}

// GetTotalDuration returns the sum of all durations in seconds.
func (d *SqliteLibrary) GetTotalDuration(ctx context.Context) (int, error) {
	var total int
	err := d.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(duration), 0) FROM songs`).Scan(&total)
	return total, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (*music.Song, error) {
	song := &music.Song{}
	var album, filePath, genre sql.NullString
	var duration, year sql.NullInt64
	var createdAt string

	err := row.Scan(&song.ID, &song.Title, &song.Artist, &album, &duration, &filePath, &genre, &year, &createdAt)
	if err != nil {
		return nil, err
	}
	song.Album = album.String
	song.FilePath = filePath.String
	song.Genre = genre.String
	song.Duration = int(duration.Int64)
	song.Year = int(year.Int64)
	song.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		slog.Warn("Invalid created_at in songs table", "songID", song.ID, "value", createdAt)
	}
	return song, nil
}

func collectSongs(rows *sql.Rows) ([]*music.Song, error) {
	defer rows.Close()
	songs := []*music.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func collectDistribution(rows *sql.Rows) (map[string]int, error) {
	defer rows.Close()
	dist := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		dist[key] = count
	}
	return dist, rows.Err()
}
