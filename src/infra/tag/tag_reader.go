package tag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/contre95/songshelf/src/features/importing"
	"github.com/contre95/songshelf/src/music"
	"github.com/dhowden/tag"
	goflac "github.com/go-flac/go-flac"
)

// TagReader reads song metadata from audio files using the dhowden/tag library.
type TagReader struct{}

// NewTagReader creates a new TagReader
func NewTagReader() importing.TagReader {
	return &TagReader{}
}

// ReadFileTags reads the tags of an audio file into a song. Fields missing
// from the file are left empty; the song is not validated.
func (r *TagReader) ReadFileTags(ctx context.Context, filePath string) (*music.Song, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tags, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	artist := tags.Artist()
	if artist == "" {
		artist = tags.AlbumArtist()
	}

	song := &music.Song{
		Title:    strings.TrimSpace(tags.Title()),
		Artist:   strings.TrimSpace(artist),
		Album:    strings.TrimSpace(tags.Album()),
		Genre:    strings.TrimSpace(tags.Genre()),
		Year:     tags.Year(),
		FilePath: filePath,
	}
	song.Duration = r.readDuration(filePath, tags)
	return song, nil
}

// readDuration returns the track length in seconds, 0 when unknown.
func (r *TagReader) readDuration(filePath string, tags tag.Metadata) int {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".flac":
		return flacDuration(filePath)
	case ".mp3":
		// TLEN holds the length in milliseconds
		if raw := tags.Raw(); raw != nil {
			if v, ok := raw["TLEN"].(string); ok {
				if ms, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && ms > 0 {
					return ms / 1000
				}
			}
		}
	}
	return 0
}

// flacDuration reads total samples and sample rate from the STREAMINFO block.
func flacDuration(filePath string) int {
	f, err := goflac.ParseFile(filePath)
	if err != nil {
		return 0
	}
	for _, meta := range f.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])
		if sampleRate == 0 {
			return 0
		}
		return int(totalSamples / int64(sampleRate))
	}
	return 0
}
