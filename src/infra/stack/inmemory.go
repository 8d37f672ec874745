package stack

import (
	"sync"

	"github.com/contre95/songshelf/src/features/deleting"
	"github.com/contre95/songshelf/src/music"
)

// InMemoryStack is an in-memory LIFO implementation of deleting.Stack
type InMemoryStack struct {
	mu    sync.Mutex
	items []*music.Song
}

// NewInMemoryStack creates a new in-memory stack
func NewInMemoryStack() deleting.Stack {
	return &InMemoryStack{}
}

// Push places a song on top of the stack
func (s *InMemoryStack) Push(song *music.Song) {
	if song == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, song)
}

// Pop removes the top song
func (s *InMemoryStack) Pop() (*music.Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	if n == 0 {
		return nil, false
	}
	song := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return song, true
}

// Peek returns the top song
func (s *InMemoryStack) Peek() (*music.Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

func (s *InMemoryStack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *InMemoryStack) IsEmpty() bool {
	return s.Len() == 0
}

// Items returns the staged songs, top first
func (s *InMemoryStack) Items() []*music.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*music.Song, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out
}

func (s *InMemoryStack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
