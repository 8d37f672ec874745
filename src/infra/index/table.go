package index

import (
	"sort"

	"github.com/contre95/songshelf/src/music"
)

// SongTable maps song IDs to songs.
type SongTable struct {
	songs map[string]*music.Song
}

// NewSongTable returns an empty table.
func NewSongTable() *SongTable {
	return &SongTable{songs: make(map[string]*music.Song)}
}

// Load inserts every song, overwriting entries with the same ID.
func (t *SongTable) Load(songs []*music.Song) {
	for _, s := range songs {
		t.Put(s)
	}
}

// Put stores the song under its ID.
func (t *SongTable) Put(song *music.Song) {
	if song == nil {
		return
	}
	t.songs[song.ID] = song
}

// Get returns the song with the given ID.
func (t *SongTable) Get(id string) (*music.Song, bool) {
	s, ok := t.songs[id]
	return s, ok
}

// Remove drops the entry and reports whether it existed.
func (t *SongTable) Remove(id string) bool {
	if _, ok := t.songs[id]; !ok {
		return false
	}
	delete(t.songs, id)
	return true
}

// Reset empties the table.
func (t *SongTable) Reset() {
	clear(t.songs)
}

func (t *SongTable) Len() int {
	return len(t.songs)
}

// All returns every song sorted by ID.
func (t *SongTable) All() []*music.Song {
	out := make([]*music.Song, 0, len(t.songs))
	for _, s := range t.songs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
