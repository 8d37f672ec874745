package queue

import (
	"sync"

	"github.com/contre95/songshelf/src/features/adding"
	"github.com/contre95/songshelf/src/music"
)

// InMemoryQueue is an in-memory FIFO implementation of adding.Queue
type InMemoryQueue struct {
	mu    sync.Mutex
	items []*music.Song
}

// NewInMemoryQueue creates a new in-memory queue
func NewInMemoryQueue() adding.Queue {
	return &InMemoryQueue{}
}

// Enqueue adds a song at the back of the queue
func (q *InMemoryQueue) Enqueue(song *music.Song) {
	if song == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, song)
}

// Dequeue removes the song at the front of the queue
func (q *InMemoryQueue) Dequeue() (*music.Song, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	song := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return song, true
}

// Peek returns the song at the front of the queue
func (q *InMemoryQueue) Peek() (*music.Song, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[0], true
}

func (q *InMemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *InMemoryQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Items returns the queued songs, front first
func (q *InMemoryQueue) Items() []*music.Song {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*music.Song, len(q.items))
	copy(out, q.items)
	return out
}

// Clear removes all songs from the queue
func (q *InMemoryQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}
