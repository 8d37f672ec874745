package tag

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/contre95/songshelf/src/music"
)

// createMinimalMP3 writes a single MPEG1 Layer3 frame header plus padding.
func createMinimalMP3(t *testing.T, path string) {
	t.Helper()
	frame := make([]byte, 417)
	frame[0] = 0xff
	frame[1] = 0xfb
	frame[2] = 0x90
	if err := os.WriteFile(path, frame, 0o600); err != nil {
		t.Fatalf("failed to create test MP3: %v", err)
	}
}

func TestReadFileTags_MP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagine.mp3")
	createMinimalMP3(t, path)

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to open MP3 for tagging: %v", err)
	}
	tag.SetTitle("Imagine")
	tag.SetArtist("John Lennon")
	tag.SetAlbum("Imagine")
	tag.SetGenre("Rock")
	tag.AddTextFrame("TLEN", id3v2.EncodingUTF8, "183000")
	if err := tag.Save(); err != nil {
		t.Fatalf("failed to save tags: %v", err)
	}
	tag.Close()

	song, err := NewTagReader().ReadFileTags(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFileTags failed: %v", err)
	}
	if song.Title != "Imagine" || song.Artist != "John Lennon" || song.Album != "Imagine" {
		t.Errorf("unexpected song %+v", song)
	}
	if song.Genre != "Rock" {
		t.Errorf("Genre = %q, want Rock", song.Genre)
	}
	if song.Duration != 183 {
		t.Errorf("Duration = %d, want 183", song.Duration)
	}
	if song.FilePath != path {
		t.Errorf("FilePath = %q", song.FilePath)
	}
}

func TestReadFileTags_Errors(t *testing.T) {
	r := NewTagReader()
	if _, err := r.ReadFileTags(context.Background(), filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("expected error for missing file")
	}

	junk := filepath.Join(t.TempDir(), "notes.mp3")
	if err := os.WriteFile(junk, []byte("not audio at all"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadFileTags(context.Background(), junk); err == nil {
		t.Error("expected error for file without tags")
	}
}

func TestWriteFileTags_MP3RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	createMinimalMP3(t, path)

	song := &music.Song{Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", Genre: "Rock", Duration: 354}
	if err := NewTagWriter().WriteFileTags(context.Background(), path, song); err != nil {
		t.Fatalf("WriteFileTags failed: %v", err)
	}

	got, err := NewTagReader().ReadFileTags(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFileTags failed: %v", err)
	}
	if got.Title != song.Title || got.Artist != song.Artist || got.Album != song.Album {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Duration != 354 {
		t.Errorf("Duration = %d, want 354", got.Duration)
	}

	// editing again replaces the frames
	song.Title = "Bohemian Rhapsody (Live)"
	if err := NewTagWriter().WriteFileTags(context.Background(), path, song); err != nil {
		t.Fatalf("second WriteFileTags failed: %v", err)
	}
	got, _ = NewTagReader().ReadFileTags(context.Background(), path)
	if got.Title != "Bohemian Rhapsody (Live)" {
		t.Errorf("Title after rewrite = %q", got.Title)
	}
}

func TestWriteFileTags_Unsupported(t *testing.T) {
	err := NewTagWriter().WriteFileTags(context.Background(), "song.wav", &music.Song{Title: "x", Artist: "y"})
	if err == nil {
		t.Error("expected unsupported format error")
	}
}
