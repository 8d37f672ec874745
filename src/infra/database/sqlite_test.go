package database

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/contre95/songshelf/src/music"
)

func setupTestLibrary(t *testing.T) *SqliteLibrary {
	t.Helper()
	lib, err := NewSqliteLibrary(filepath.Join(t.TempDir(), "songs.db"))
	if err != nil {
		t.Fatalf("failed to open library: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func sampleSong() *music.Song {
	return &music.Song{
		ID:        "S001",
		Title:     "Imagine",
		Artist:    "John Lennon",
		Album:     "Imagine",
		Duration:  183,
		FilePath:  "/music/imagine.mp3",
		Genre:     "Rock",
		Year:      1971,
		CreatedAt: time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	if err := lib.InitSchema(ctx); err != nil {
		t.Fatalf("second InitSchema failed: %v", err)
	}
	if err := lib.InitSchema(ctx); err != nil {
		t.Fatalf("third InitSchema failed: %v", err)
	}
}

func TestAddSong_RoundTrip(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	want := sampleSong()

	if err := lib.AddSong(ctx, want.Clone()); err != nil {
		t.Fatalf("AddSong failed: %v", err)
	}

	songs, err := lib.GetSongs(ctx)
	if err != nil {
		t.Fatalf("GetSongs failed: %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("len(songs) = %d, want 1", len(songs))
	}
	got := songs[0]
	if got.ID != want.ID || got.Title != want.Title || got.Artist != want.Artist ||
		got.Album != want.Album || got.Duration != want.Duration || got.FilePath != want.FilePath ||
		got.Genre != want.Genre || got.Year != want.Year {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestAddSong_NonASCIIRoundTrip(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()

	song := sampleSong()
	song.Title = strings.Repeat("夜", 300)
	song.Artist = "Sigur Rós"
	song.Genre = strings.Repeat("a", 99) + "é-pop"
	if err := lib.AddSong(ctx, song); err != nil {
		t.Fatalf("AddSong failed: %v", err)
	}

	got, err := lib.GetSong(ctx, song.ID)
	if err != nil || got == nil {
		t.Fatalf("GetSong = %v, %v", got, err)
	}
	if got.Title != song.Title || got.Artist != "Sigur Rós" {
		t.Errorf("title/artist not round-tripped: %q / %q", got.Title, got.Artist)
	}
	if !utf8.ValidString(got.Genre) {
		t.Fatalf("stored genre is not valid UTF-8: %q", got.Genre)
	}
	if want := strings.Repeat("a", 99) + "é"; got.Genre != want {
		t.Errorf("genre = %q, want %q", got.Genre, want)
	}
}

func TestAddSong_AssignsIDAndTimestamp(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	song := &music.Song{Title: "Yesterday", Artist: "The Beatles"}

	if err := lib.AddSong(ctx, song); err != nil {
		t.Fatalf("AddSong failed: %v", err)
	}
	if song.ID == "" {
		t.Error("expected store to assign an ID")
	}
	if song.CreatedAt.IsZero() {
		t.Error("expected store to assign CreatedAt")
	}

	got, err := lib.GetSong(ctx, song.ID)
	if err != nil || got == nil {
		t.Fatalf("GetSong(%s) = %v, %v", song.ID, got, err)
	}
}

func TestAddSong_DuplicateID(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	if err := lib.AddSong(ctx, sampleSong()); err != nil {
		t.Fatalf("AddSong failed: %v", err)
	}
	err := lib.AddSong(ctx, sampleSong())
	if !errors.Is(err, music.ErrDuplicateSong) {
		t.Fatalf("AddSong duplicate = %v, want ErrDuplicateSong", err)
	}
}

func TestAddSong_RejectsInvalid(t *testing.T) {
	lib := setupTestLibrary(t)
	err := lib.AddSong(context.Background(), &music.Song{Title: "", Artist: "x"})
	if !errors.Is(err, music.ErrInvalidSong) {
		t.Fatalf("AddSong invalid = %v, want ErrInvalidSong", err)
	}
	count, _ := lib.GetSongsCount(context.Background())
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestUpdateSong(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	song := sampleSong()
	if err := lib.AddSong(ctx, song); err != nil {
		t.Fatalf("AddSong failed: %v", err)
	}

	song.Title = "Imagine (Remastered)"
	song.Year = 1972
	if err := lib.UpdateSong(ctx, song); err != nil {
		t.Fatalf("UpdateSong failed: %v", err)
	}

	got, err := lib.GetSong(ctx, song.ID)
	if err != nil {
		t.Fatalf("GetSong failed: %v", err)
	}
	if got.Title != "Imagine (Remastered)" || got.Year != 1972 {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdateSong_MissingLeavesStoreUnchanged(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	if err := lib.AddSong(ctx, sampleSong()); err != nil {
		t.Fatalf("AddSong failed: %v", err)
	}

	ghost := sampleSong()
	ghost.ID = "S999"
	ghost.Title = "Fake Song"
	err := lib.UpdateSong(ctx, ghost)
	if !errors.Is(err, music.ErrSongNotFound) {
		t.Fatalf("UpdateSong missing = %v, want ErrSongNotFound", err)
	}

	songs, _ := lib.GetSongs(ctx)
	if len(songs) != 1 || songs[0].Title != "Imagine" {
		t.Errorf("store changed after failed update: %+v", songs)
	}
}

func TestDeleteSong(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	a := &music.Song{ID: "a", Title: "A", Artist: "X"}
	b := &music.Song{ID: "b", Title: "B", Artist: "Y"}
	for _, s := range []*music.Song{a, b} {
		if err := lib.AddSong(ctx, s); err != nil {
			t.Fatalf("AddSong failed: %v", err)
		}
	}

	if err := lib.DeleteSong(ctx, "a"); err != nil {
		t.Fatalf("DeleteSong failed: %v", err)
	}
	songs, _ := lib.GetSongs(ctx)
	if len(songs) != 1 || songs[0].ID != "b" {
		t.Errorf("after delete songs = %+v, want only b", songs)
	}

	if err := lib.DeleteSong(ctx, "a"); !errors.Is(err, music.ErrSongNotFound) {
		t.Errorf("DeleteSong missing = %v, want ErrSongNotFound", err)
	}
}

func TestGetSong_Missing(t *testing.T) {
	lib := setupTestLibrary(t)
	got, err := lib.GetSong(context.Background(), "nope")
	if err != nil || got != nil {
		t.Errorf("GetSong missing = %v, %v; want nil, nil", got, err)
	}
}

func TestGetSongs_OrderedByTitleThenArtist(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	input := []*music.Song{
		{Title: "Yesterday", Artist: "The Beatles"},
		{Title: "Imagine", Artist: "Z Cover Band"},
		{Title: "Imagine", Artist: "John Lennon"},
		{Title: "Bohemian Rhapsody", Artist: "Queen"},
	}
	for _, s := range input {
		if err := lib.AddSong(ctx, s); err != nil {
			t.Fatalf("AddSong failed: %v", err)
		}
	}

	songs, err := lib.GetSongs(ctx)
	if err != nil {
		t.Fatalf("GetSongs failed: %v", err)
	}
	want := []string{"Bohemian Rhapsody - Queen", "Imagine - John Lennon", "Imagine - Z Cover Band", "Yesterday - The Beatles"}
	for i, s := range songs {
		if s.String() != want[i] {
			t.Errorf("songs[%d] = %q, want %q", i, s.String(), want[i])
		}
	}
}

func TestSearchSongs(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	input := []*music.Song{
		{Title: "Imagine", Artist: "John Lennon", Album: "Imagine"},
		{Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera"},
		{Title: "100% Pure", Artist: "Percent"},
	}
	for _, s := range input {
		if err := lib.AddSong(ctx, s); err != nil {
			t.Fatalf("AddSong failed: %v", err)
		}
	}

	tests := []struct {
		query string
		want  int
	}{
		{"lennon", 1},
		{"OPERA", 1},
		{"ima", 1},
		{"%", 1},
		{"zzz", 0},
		{"", 3},
	}
	for _, tt := range tests {
		got, err := lib.SearchSongs(ctx, tt.query)
		if err != nil {
			t.Fatalf("SearchSongs(%q) failed: %v", tt.query, err)
		}
		if len(got) != tt.want {
			t.Errorf("SearchSongs(%q) returned %d songs, want %d", tt.query, len(got), tt.want)
		}
	}
}

func TestDistributions(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	input := []*music.Song{
		{Title: "A", Artist: "X", Genre: "Rock", Year: 1971, Duration: 100},
		{Title: "B", Artist: "X", Genre: "Rock", Year: 1975, Duration: 200},
		{Title: "C", Artist: "Y", Duration: 30},
	}
	for _, s := range input {
		if err := lib.AddSong(ctx, s); err != nil {
			t.Fatalf("AddSong failed: %v", err)
		}
	}

	genres, err := lib.GetGenreDistribution(ctx)
	if err != nil {
		t.Fatalf("GetGenreDistribution failed: %v", err)
	}
	if genres["Rock"] != 2 || genres["Unknown"] != 1 {
		t.Errorf("genres = %v", genres)
	}

	years, err := lib.GetYearDistribution(ctx)
	if err != nil {
		t.Fatalf("GetYearDistribution failed: %v", err)
	}
	if years["1971"] != 1 || years["1975"] != 1 || years["Unknown"] != 1 {
		t.Errorf("years = %v", years)
	}

	total, err := lib.GetTotalDuration(ctx)
	if err != nil || total != 330 {
		t.Errorf("GetTotalDuration = %d, %v; want 330", total, err)
	}
}
