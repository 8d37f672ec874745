package library

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/contre95/songshelf/src/music"
)

// MockCatalog is a mock implementation of Catalog
type MockCatalog struct {
	music.Library // Embed interface to avoid implementing all methods, will panic if unused methods called
	songs         map[string]*music.Song
	err           error
}

func NewMockCatalog(songs ...*music.Song) *MockCatalog {
	m := &MockCatalog{songs: make(map[string]*music.Song)}
	for _, s := range songs {
		m.songs[s.ID] = s
	}
	return m
}

func (m *MockCatalog) Sorted(ctx context.Context) ([]*music.Song, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*music.Song, 0, len(m.songs))
	for _, s := range m.songs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *MockCatalog) FindByTitle(ctx context.Context, title string) (*music.Song, error) {
	for _, s := range m.songs {
		if s.Title == title {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockCatalog) Lookup(ctx context.Context, id string) (*music.Song, error) {
	return m.songs[id], nil
}

func (m *MockCatalog) SearchSongs(ctx context.Context, query string) ([]*music.Song, error) {
	var out []*music.Song
	for _, s := range m.songs {
		if strings.Contains(strings.ToLower(s.Title+s.Artist), strings.ToLower(query)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockCatalog) GetSongsCount(ctx context.Context) (int, error) {
	return len(m.songs), m.err
}

func sampleCatalog() *MockCatalog {
	return NewMockCatalog(
		&music.Song{ID: "1", Title: "Yesterday", Artist: "The Beatles"},
		&music.Song{ID: "2", Title: "Imagine", Artist: "John Lennon"},
		&music.Song{ID: "3", Title: "Bohemian Rhapsody", Artist: "Queen"},
	)
}

func TestListSongs_SortedByTitle(t *testing.T) {
	service := NewService(sampleCatalog())
	songs, err := service.ListSongs(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"Bohemian Rhapsody", "Imagine", "Yesterday"}
	for i, s := range songs {
		if s.Title != want[i] {
			t.Errorf("position %d: got %q, want %q", i, s.Title, want[i])
		}
	}
}

func TestListSongs_PropagatesError(t *testing.T) {
	mock := sampleCatalog()
	mock.err = errors.New("disk on fire")
	if _, err := NewService(mock).ListSongs(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestGetSong_NotFound(t *testing.T) {
	service := NewService(sampleCatalog())
	if _, err := service.GetSong(context.Background(), "BAD_ID"); !errors.Is(err, music.ErrSongNotFound) {
		t.Errorf("expected ErrSongNotFound, got %v", err)
	}
	song, err := service.GetSong(context.Background(), "2")
	if err != nil || song.Title != "Imagine" {
		t.Errorf("GetSong = %+v, %v", song, err)
	}
}

func TestFindByTitle(t *testing.T) {
	service := NewService(sampleCatalog())
	song, err := service.FindByTitle(context.Background(), "  Imagine ")
	if err != nil || song.ID != "2" {
		t.Errorf("FindByTitle = %+v, %v", song, err)
	}
	if _, err := service.FindByTitle(context.Background(), "imagine"); !errors.Is(err, music.ErrSongNotFound) {
		t.Errorf("title match must be exact, got %v", err)
	}
}

func TestSearchSongs(t *testing.T) {
	service := NewService(sampleCatalog())
	songs, err := service.SearchSongs(context.Background(), "LENNON")
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 1 || songs[0].ID != "2" {
		t.Errorf("unexpected search result %+v", songs)
	}
}

func TestPaginate(t *testing.T) {
	songs := make([]*music.Song, 5)
	for i := range songs {
		songs[i] = &music.Song{ID: string(rune('a' + i))}
	}
	if got := paginate(songs, 2, 2); len(got) != 2 || got[0].ID != "c" {
		t.Errorf("page 2 = %+v", got)
	}
	if got := paginate(songs, 3, 2); len(got) != 1 {
		t.Errorf("last page size = %d", len(got))
	}
	if got := paginate(songs, 9, 2); len(got) != 0 {
		t.Errorf("past the end = %+v", got)
	}
	p := NewPagination(3, 2, 5)
	if p.TotalPages != 3 || p.HasNext || !p.HasPrev {
		t.Errorf("unexpected pagination %+v", p)
	}
}

func TestFormatSongList(t *testing.T) {
	songs, _ := sampleCatalog().Sorted(context.Background())
	out := FormatSongList("Songs", songs, 2)
	if !strings.Contains(out, "Bohemian Rhapsody - Queen [3]") {
		t.Errorf("missing entry in %q", out)
	}
	if !strings.Contains(out, "and 1 more") {
		t.Errorf("missing overflow note in %q", out)
	}
	if !strings.Contains(FormatSongList("Songs", nil, 2), "Nothing here.") {
		t.Error("empty list message missing")
	}
}
