package music

// SongUpdate is a partial update. Only non-nil fields are applied.
type SongUpdate struct {
	Title    *string `json:"title,omitempty"`
	Artist   *string `json:"artist,omitempty"`
	Album    *string `json:"album,omitempty"`
	Genre    *string `json:"genre,omitempty"`
	Year     *int    `json:"year,omitempty"`
	Duration *int    `json:"duration,omitempty"`
	FilePath *string `json:"file_path,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u SongUpdate) IsEmpty() bool {
	return u.Title == nil && u.Artist == nil && u.Album == nil && u.Genre == nil &&
		u.Year == nil && u.Duration == nil && u.FilePath == nil
}

// Apply copies the provided fields onto the song.
func (u SongUpdate) Apply(s *Song) {
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.Artist != nil {
		s.Artist = *u.Artist
	}
	if u.Album != nil {
		s.Album = *u.Album
	}
	if u.Genre != nil {
		s.Genre = *u.Genre
	}
	if u.Year != nil {
		s.Year = *u.Year
	}
	if u.Duration != nil {
		s.Duration = *u.Duration
	}
	if u.FilePath != nil {
		s.FilePath = *u.FilePath
	}
}

// TagsChanged reports whether the update touches a field stored in audio tags.
func (u SongUpdate) TagsChanged() bool {
	return u.Title != nil || u.Artist != nil || u.Album != nil || u.Genre != nil || u.Year != nil
}
