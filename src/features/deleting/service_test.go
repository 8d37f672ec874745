package deleting

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/contre95/songshelf/src/music"
)

// sliceStack is a minimal Stack used by the tests
type sliceStack struct {
	items []*music.Song
}

func (s *sliceStack) Push(song *music.Song) { s.items = append(s.items, song) }
func (s *sliceStack) Pop() (*music.Song, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}
func (s *sliceStack) Peek() (*music.Song, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}
func (s *sliceStack) Len() int      { return len(s.items) }
func (s *sliceStack) IsEmpty() bool { return len(s.items) == 0 }
func (s *sliceStack) Items() []*music.Song {
	out := make([]*music.Song, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out
}
func (s *sliceStack) Clear() { s.items = nil }

// MockCatalog is a mock implementation of Catalog
type MockCatalog struct {
	music.Library
	songs   map[string]*music.Song
	deleted []string
	failOn  map[string]error
}

func newMockCatalog(songs ...*music.Song) *MockCatalog {
	m := &MockCatalog{songs: map[string]*music.Song{}, failOn: map[string]error{}}
	for _, s := range songs {
		m.songs[s.ID] = s
	}
	return m
}

func (m *MockCatalog) Lookup(ctx context.Context, id string) (*music.Song, error) {
	return m.songs[id].Clone(), nil
}

func (m *MockCatalog) DeleteSong(ctx context.Context, id string) error {
	if err := m.failOn[id]; err != nil {
		return err
	}
	if _, ok := m.songs[id]; !ok {
		return music.ErrSongNotFound
	}
	delete(m.songs, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func threeSongs() *MockCatalog {
	return newMockCatalog(
		&music.Song{ID: "1", Title: "Imagine", Artist: "John Lennon"},
		&music.Song{ID: "2", Title: "Bohemian Rhapsody", Artist: "Queen"},
		&music.Song{ID: "3", Title: "Hotel California", Artist: "Eagles"},
	)
}

func TestStage(t *testing.T) {
	catalog := threeSongs()
	service := NewService(&sliceStack{}, catalog, nil)
	ctx := context.Background()

	song, err := service.Stage(ctx, "1")
	if err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if song.Title != "Imagine" {
		t.Errorf("staged %+v", song)
	}
	if !service.IsStaged("1") || service.Len() != 1 {
		t.Error("song not on the stack")
	}
	if len(catalog.deleted) != 0 {
		t.Error("staging must not touch the store")
	}

	if _, err := service.Stage(ctx, "1"); !errors.Is(err, ErrAlreadyStaged) {
		t.Errorf("second Stage = %v, want ErrAlreadyStaged", err)
	}
	if _, err := service.Stage(ctx, "missing"); !errors.Is(err, music.ErrSongNotFound) {
		t.Errorf("Stage missing = %v, want ErrSongNotFound", err)
	}
	if service.Len() != 1 {
		t.Errorf("Len = %d, want 1", service.Len())
	}
}

func TestUndo_RestoresWithoutDeleting(t *testing.T) {
	catalog := threeSongs()
	service := NewService(&sliceStack{}, catalog, nil)
	ctx := context.Background()

	if _, err := service.Undo(); !errors.Is(err, ErrNothingStaged) {
		t.Errorf("Undo on empty = %v, want ErrNothingStaged", err)
	}

	service.Stage(ctx, "1")
	service.Stage(ctx, "2")
	song, err := service.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if song.ID != "2" {
		t.Errorf("Undo restored %s, want most recent (2)", song.ID)
	}
	if service.IsStaged("2") || !service.IsStaged("1") {
		t.Error("wrong stack state after undo")
	}
	if len(catalog.deleted) != 0 || len(catalog.songs) != 3 {
		t.Error("undo must not touch the store")
	}
}

func TestFlush_MostRecentFirst(t *testing.T) {
	catalog := threeSongs()
	service := NewService(&sliceStack{}, catalog, nil)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		if _, err := service.Stage(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	result := service.Flush(ctx)
	if result.Deleted != 3 || result.Failed != 0 {
		t.Errorf("result = %+v", result)
	}
	want := []string{"3", "2", "1"}
	for i, id := range want {
		if catalog.deleted[i] != id {
			t.Fatalf("delete order = %v, want %v", catalog.deleted, want)
		}
	}
	if service.Len() != 0 {
		t.Error("stack not empty after flush")
	}

	history := service.History()
	if len(history) != 3 || history[0].ID != "1" {
		t.Errorf("history = %v", history)
	}
}

func TestFlush_ContinuesPastFailures(t *testing.T) {
	catalog := threeSongs()
	catalog.failOn["2"] = errors.New("database is locked")
	rec := newCountingRecorder()
	service := NewService(&sliceStack{}, catalog, rec)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		service.Stage(ctx, id)
	}
	// removed behind our back
	delete(catalog.songs, "3")

	result := service.Flush(ctx)
	if result.Deleted != 1 || result.Failed != 2 {
		t.Fatalf("result = %+v", result)
	}
	if len(result.Failures) != 2 || result.Failures[0].Song.ID != "3" {
		t.Errorf("failures = %+v", result.Failures)
	}
	if !service.IsStaged("2") || service.IsStaged("3") || service.Len() != 1 {
		t.Errorf("staged after flush = %v", service.Staged())
	}
	if rec.ok["delete"] != 1 || rec.failed["delete"] != 2 {
		t.Errorf("recorder = %+v / %+v", rec.ok, rec.failed)
	}
}

func TestCommitLatest(t *testing.T) {
	catalog := threeSongs()
	service := NewService(&sliceStack{}, catalog, nil)
	ctx := context.Background()

	if _, err := service.CommitLatest(ctx); !errors.Is(err, ErrNothingStaged) {
		t.Errorf("CommitLatest on empty = %v", err)
	}

	service.Stage(ctx, "1")
	service.Stage(ctx, "2")
	catalog.failOn["2"] = errors.New("disk I/O error")
	if _, err := service.CommitLatest(ctx); err == nil {
		t.Fatal("expected failure")
	}
	if !service.IsStaged("2") || service.Len() != 2 {
		t.Error("failed commit should keep the song staged")
	}

	delete(catalog.failOn, "2")
	song, err := service.CommitLatest(ctx)
	if err != nil || song.ID != "2" {
		t.Fatalf("CommitLatest = %+v, %v", song, err)
	}
	if _, ok := catalog.songs["2"]; ok {
		t.Error("song still in store")
	}
}

func TestDeleteNow(t *testing.T) {
	catalog := threeSongs()
	service := NewService(&sliceStack{}, catalog, nil)
	ctx := context.Background()

	if err := service.DeleteNow(ctx, "1"); err != nil {
		t.Fatalf("DeleteNow failed: %v", err)
	}
	if err := service.DeleteNow(ctx, "1"); !errors.Is(err, music.ErrSongNotFound) {
		t.Errorf("second DeleteNow = %v, want ErrSongNotFound", err)
	}
	if h := service.History(); len(h) != 1 || h[0].ID != "1" {
		t.Errorf("history = %v", h)
	}
}

func TestHistoryKeepsEveryDeletion(t *testing.T) {
	catalog := newMockCatalog()
	const total = 105
	for i := range total {
		id := fmt.Sprintf("id%03d", i)
		catalog.songs[id] = &music.Song{ID: id, Title: id, Artist: "x"}
	}
	service := NewService(&sliceStack{}, catalog, nil)
	ctx := context.Background()
	for i := range total {
		if _, err := service.Stage(ctx, fmt.Sprintf("id%03d", i)); err != nil {
			t.Fatalf("Stage failed: %v", err)
		}
	}

	result := service.Flush(ctx)
	if result.Deleted != total {
		t.Fatalf("deleted = %d, want %d", result.Deleted, total)
	}
	history := service.History()
	if len(history) != total {
		t.Fatalf("history length = %d, want %d", len(history), total)
	}
	// flush runs LIFO, so the first staged song is the latest deletion
	if history[0].ID != "id000" || history[total-1].ID != fmt.Sprintf("id%03d", total-1) {
		t.Errorf("history ends = %s .. %s", history[0].ID, history[total-1].ID)
	}
}

// countingRecorder remembers outcomes per operation
type countingRecorder struct {
	ok, failed map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{ok: map[string]int{}, failed: map[string]int{}}
}

func (r *countingRecorder) RecordOperation(op string, err error) {
	if err != nil {
		r.failed[op]++
		return
	}
	r.ok[op]++
}
