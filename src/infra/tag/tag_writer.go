package tag

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/contre95/songshelf/src/features/editing"
	"github.com/contre95/songshelf/src/music"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// TagWriter writes song metadata into MP3 and FLAC files.
type TagWriter struct{}

// NewTagWriter creates a new TagWriter.
func NewTagWriter() editing.TagWriter {
	return &TagWriter{}
}

// WriteFileTags writes the song's metadata to the file.
func (t *TagWriter) WriteFileTags(ctx context.Context, filePath string, song *music.Song) error {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".mp3":
		return t.tagMP3(filePath, song)
	case ".flac":
		return t.tagFLAC(filePath, song)
	default:
		return fmt.Errorf("unsupported format: %s", ext)
	}
}

// tagMP3 handles MP3 tagging using id3v2. Frames the song does not carry are kept.
func (t *TagWriter) tagMP3(filePath string, song *music.Song) error {
	tag, err := id3v2.Open(filePath, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open MP3 file for tagging: %w", err)
	}
	defer tag.Close()

	tag.SetTitle(song.Title)
	tag.SetArtist(song.Artist)
	tag.SetAlbum(song.Album)
	tag.SetGenre(song.Genre)
	if song.Year > 0 {
		tag.SetYear(strconv.Itoa(song.Year))
	}
	if song.Duration > 0 {
		tag.AddTextFrame("TLEN", id3v2.EncodingUTF8, strconv.Itoa(song.Duration*1000))
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save MP3 tags: %w", err)
	}

	slog.Info("Tagged MP3 file", "filePath", filePath, "title", song.Title)
	return nil
}

// tagFLAC handles FLAC tagging using Vorbis comments.
func (t *TagWriter) tagFLAC(filePath string, song *music.Song) error {
	f, err := goflac.ParseFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	var existing *flacvorbis.MetaDataBlockVorbisComment
	commentIndex := -1
	for idx, meta := range f.Meta {
		if meta.Type == goflac.VorbisComment {
			existing, err = flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return fmt.Errorf("failed to parse Vorbis comment: %w", err)
			}
			commentIndex = idx
			break
		}
	}

	// Rebuild the comment block so edited fields replace the old values
	// instead of being appended next to them.
	vorbisComment := flacvorbis.New()
	managed := map[string]bool{
		flacvorbis.FIELD_TITLE:  true,
		flacvorbis.FIELD_ARTIST: true,
		flacvorbis.FIELD_ALBUM:  true,
		flacvorbis.FIELD_GENRE:  true,
		flacvorbis.FIELD_DATE:   true,
	}
	if existing != nil {
		vorbisComment.Vendor = existing.Vendor
		for _, c := range existing.Comments {
			key, _, _ := strings.Cut(c, "=")
			if managed[strings.ToUpper(key)] {
				continue
			}
			vorbisComment.Comments = append(vorbisComment.Comments, c)
		}
	}

	vorbisComment.Add(flacvorbis.FIELD_TITLE, song.Title)
	vorbisComment.Add(flacvorbis.FIELD_ARTIST, song.Artist)
	if song.Album != "" {
		vorbisComment.Add(flacvorbis.FIELD_ALBUM, song.Album)
	}
	if song.Genre != "" {
		vorbisComment.Add(flacvorbis.FIELD_GENRE, song.Genre)
	}
	if song.Year > 0 {
		vorbisComment.Add(flacvorbis.FIELD_DATE, strconv.Itoa(song.Year))
	}

	commentMeta := vorbisComment.Marshal()
	if commentIndex >= 0 {
		f.Meta[commentIndex] = &commentMeta
	} else {
		f.Meta = append(f.Meta, &commentMeta)
	}

	if err := f.Save(filePath); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}

	slog.Info("Tagged FLAC file", "filePath", filePath, "title", song.Title)
	return nil
}
