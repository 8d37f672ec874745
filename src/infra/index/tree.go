// Package index holds the in-memory lookup structures built over the song catalog.
package index

import "github.com/contre95/songshelf/src/music"

type node struct {
	song        *music.Song
	left, right *node
}

// TitleTree is an unbalanced binary search tree ordered by song title.
// Duplicate titles are ignored: the first insertion wins.
type TitleTree struct {
	root *node
	size int
}

// NewTitleTree returns an empty tree.
func NewTitleTree() *TitleTree {
	return &TitleTree{}
}

// BuildTitleTree inserts the songs in the given order into a fresh tree.
func BuildTitleTree(songs []*music.Song) *TitleTree {
	t := NewTitleTree()
	for _, s := range songs {
		t.Insert(s)
	}
	return t
}

// Insert adds the song and reports whether it was stored.
func (t *TitleTree) Insert(song *music.Song) bool {
	if song == nil {
		return false
	}
	n := &node{song: song}
	if t.root == nil {
		t.root = n
		t.size++
		return true
	}

	cur := t.root
	for {
		switch {
		case song.Title == cur.song.Title:
			return false
		case song.Title < cur.song.Title:
			if cur.left == nil {
				cur.left = n
				t.size++
				return true
			}
			cur = cur.left
		default:
			if cur.right == nil {
				cur.right = n
				t.size++
				return true
			}
			cur = cur.right
		}
	}
}

// Search returns the song with exactly this title, or nil.
func (t *TitleTree) Search(title string) *music.Song {
	cur := t.root
	for cur != nil {
		switch {
		case title == cur.song.Title:
			return cur.song
		case title < cur.song.Title:
			cur = cur.left
		default:
			cur = cur.right
		}
	}
	return nil
}

// Walk visits songs in ascending title order until fn returns false.
func (t *TitleTree) Walk(fn func(*music.Song) bool) {
	// explicit stack: a tree built from sorted input degenerates into a list
	var stack []*node
	cur := t.root
	for cur != nil || len(stack) > 0 {
		for cur != nil {
			stack = append(stack, cur)
			cur = cur.left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur.song) {
			return
		}
		cur = cur.right
	}
}

// InOrder returns the songs in ascending title order.
func (t *TitleTree) InOrder() []*music.Song {
	out := make([]*music.Song, 0, t.size)
	t.Walk(func(s *music.Song) bool {
		out = append(out, s)
		return true
	})
	return out
}

// Titles returns the titles in ascending order.
func (t *TitleTree) Titles() []string {
	out := make([]string, 0, t.size)
	t.Walk(func(s *music.Song) bool {
		out = append(out, s.Title)
		return true
	})
	return out
}

// Len returns the number of stored songs.
func (t *TitleTree) Len() int {
	return t.size
}

// Height returns the number of levels, 0 for an empty tree.
func (t *TitleTree) Height() int {
	if t.root == nil {
		return 0
	}
	type level struct {
		n     *node
		depth int
	}
	height := 0
	queue := []level{{t.root, 1}}
	for len(queue) > 0 {
		l := queue[0]
		queue = queue[1:]
		if l.depth > height {
			height = l.depth
		}
		if l.n.left != nil {
			queue = append(queue, level{l.n.left, l.depth + 1})
		}
		if l.n.right != nil {
			queue = append(queue, level{l.n.right, l.depth + 1})
		}
	}
	return height
}
