package music

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSongValidate(t *testing.T) {
	tests := []struct {
		name    string
		song    Song
		wantErr bool
	}{
		{name: "valid", song: Song{Title: "Imagine", Artist: "John Lennon"}},
		{name: "missing title", song: Song{Artist: "John Lennon"}, wantErr: true},
		{name: "blank title", song: Song{Title: "   ", Artist: "John Lennon"}, wantErr: true},
		{name: "missing artist", song: Song{Title: "Imagine"}, wantErr: true},
		{name: "negative duration", song: Song{Title: "Imagine", Artist: "John Lennon", Duration: -1}, wantErr: true},
		{name: "negative year", song: Song{Title: "Imagine", Artist: "John Lennon", Year: -5}, wantErr: true},
		{name: "title too long", song: Song{Title: strings.Repeat("a", 501), Artist: "x"}, wantErr: true},
		{name: "500 character CJK title ok", song: Song{Title: strings.Repeat("歌", 500), Artist: "坂本九"}},
		{name: "501 character CJK title", song: Song{Title: strings.Repeat("歌", 501), Artist: "坂本九"}, wantErr: true},
		{name: "zero duration ok", song: Song{Title: "Imagine", Artist: "John Lennon", Duration: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.song.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSong) {
					t.Fatalf("Validate() = %v, want ErrInvalidSong", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestSongValidate_TrimsAndTruncates(t *testing.T) {
	s := Song{Title: "  Imagine ", Artist: " John Lennon", Genre: strings.Repeat("g", 150)}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if s.Title != "Imagine" || s.Artist != "John Lennon" {
		t.Errorf("fields not trimmed: %q / %q", s.Title, s.Artist)
	}
	if len(s.Genre) != 100 {
		t.Errorf("genre length = %d, want 100", len(s.Genre))
	}
}

func TestSongValidate_TruncatesGenreOnCharacterBoundary(t *testing.T) {
	tests := []struct {
		name  string
		genre string
		want  string
	}{
		{name: "multi-byte at the cut", genre: strings.Repeat("a", 99) + "é-pop", want: strings.Repeat("a", 99) + "é"},
		{name: "all multi-byte", genre: strings.Repeat("ロ", 120), want: strings.Repeat("ロ", 100)},
		{name: "short unchanged", genre: "música popular", want: "música popular"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Song{Title: "Imagine", Artist: "John Lennon", Genre: tt.genre}
			if err := s.Validate(); err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if !utf8.ValidString(s.Genre) {
				t.Fatalf("genre is not valid UTF-8: %q", s.Genre)
			}
			if s.Genre != tt.want {
				t.Errorf("genre = %q, want %q", s.Genre, tt.want)
			}
		})
	}
}

func TestSongUpdate_Apply(t *testing.T) {
	s := &Song{ID: "S001", Title: "Imagine", Artist: "John Lennon", Album: "Imagine", Year: 1971}
	artist := "Freddie Mercury"
	year := 1972
	SongUpdate{Artist: &artist, Year: &year}.Apply(s)

	if s.Artist != artist || s.Year != year {
		t.Errorf("update not applied: %+v", s)
	}
	if s.Title != "Imagine" || s.Album != "Imagine" {
		t.Errorf("untouched fields changed: %+v", s)
	}
}

func TestSongUpdate_NoopLeavesSongUnchanged(t *testing.T) {
	s := &Song{ID: "S002", Title: "Bohemian Rhapsody", Artist: "Queen", Duration: 354}
	before := *s
	u := SongUpdate{}
	if !u.IsEmpty() {
		t.Fatal("empty update should report IsEmpty")
	}
	u.Apply(s)
	if *s != before {
		t.Errorf("no-op update changed song: %+v", s)
	}
}

func TestSongClone(t *testing.T) {
	s := &Song{ID: "1", Title: "A", Artist: "B"}
	cp := s.Clone()
	cp.Title = "changed"
	if s.Title != "A" {
		t.Error("clone shares memory with original")
	}
	var nilSong *Song
	if nilSong.Clone() != nil {
		t.Error("clone of nil should be nil")
	}
}

func TestSongDurationString(t *testing.T) {
	if got := (&Song{Duration: 183}).DurationString(); got != "3:03" {
		t.Errorf("DurationString() = %q, want 3:03", got)
	}
	if got := (&Song{}).DurationString(); got != "0:00" {
		t.Errorf("DurationString() = %q, want 0:00", got)
	}
}
