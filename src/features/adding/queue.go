package adding

import (
	"errors"

	"github.com/contre95/songshelf/src/music"
)

var (
	ErrQueueEmpty = errors.New("pending queue is empty")
)

// Queue holds songs waiting to be inserted, in arrival order.
type Queue interface {
	// Enqueue appends a song at the back of the queue.
	Enqueue(song *music.Song)
	// Dequeue removes and returns the song at the front, false when empty.
	Dequeue() (*music.Song, bool)
	// Peek returns the song at the front without removing it.
	Peek() (*music.Song, bool)
	Len() int
	IsEmpty() bool
	// Items returns a copy of the queue contents, front first.
	Items() []*music.Song
	// Clear drops every pending song.
	Clear()
}
