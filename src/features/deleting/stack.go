package deleting

import (
	"errors"

	"github.com/contre95/songshelf/src/music"
)

var (
	ErrNothingStaged = errors.New("no deletion is staged")
	ErrAlreadyStaged = errors.New("song is already staged for deletion")
)

// Stack holds songs staged for deletion, most recent on top.
type Stack interface {
	// Push places a song on top of the stack.
	Push(song *music.Song)
	// Pop removes and returns the top song, false when empty.
	Pop() (*music.Song, bool)
	// Peek returns the top song without removing it.
	Peek() (*music.Song, bool)
	Len() int
	IsEmpty() bool
	// Items returns a copy of the stack contents, top first.
	Items() []*music.Song
	Clear()
}
