// Package catalog provides a read-through cache over a music.Library that keeps
// the ordered title index and the id index in sync with writes.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/contre95/songshelf/src/infra/index"
	"github.com/contre95/songshelf/src/music"
)

// CachedLibrary wraps a music.Library. Reads of the sorted view and of single
// songs by ID are served from in-memory indexes that are rebuilt lazily after
// every write.
type CachedLibrary struct {
	store music.Library

	mu         sync.Mutex
	tree       *index.TitleTree
	table      *index.SongTable
	treeStale  bool
	tableStale bool
}

// Compile-time check that CachedLibrary can stand in for the store.
var _ music.Library = (*CachedLibrary)(nil)

// NewCachedLibrary creates a cache whose indexes get built on first use.
func NewCachedLibrary(store music.Library) *CachedLibrary {
	return &CachedLibrary{
		store:      store,
		tree:       index.NewTitleTree(),
		table:      index.NewSongTable(),
		treeStale:  true,
		tableStale: true,
	}
}

// Invalidate forces both indexes to be rebuilt on next access.
func (c *CachedLibrary) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.treeStale = true
	c.tableStale = true
}

// AddSong stores the song and invalidates both indexes.
func (c *CachedLibrary) AddSong(ctx context.Context, song *music.Song) error {
	if err := c.store.AddSong(ctx, song); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// UpdateSong stores the song, replaces its table entry and invalidates the tree.
// The store never rewrites created_at, so the cached entry keeps its own.
func (c *CachedLibrary) UpdateSong(ctx context.Context, song *music.Song) error {
	if err := c.store.UpdateSong(ctx, song); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.treeStale = true
	if !c.tableStale {
		updated := song.Clone()
		if cached, ok := c.table.Get(song.ID); ok {
			updated.CreatedAt = cached.CreatedAt
		}
		c.table.Put(updated)
	}
	return nil
}

// DeleteSong removes the song from the store and both indexes.
func (c *CachedLibrary) DeleteSong(ctx context.Context, id string) error {
	if err := c.store.DeleteSong(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.treeStale = true
	c.table.Remove(id)
	return nil
}

func (c *CachedLibrary) GetSong(ctx context.Context, id string) (*music.Song, error) {
	return c.store.GetSong(ctx, id)
}

func (c *CachedLibrary) GetSongs(ctx context.Context) ([]*music.Song, error) {
	return c.store.GetSongs(ctx)
}

func (c *CachedLibrary) SearchSongs(ctx context.Context, query string) ([]*music.Song, error) {
	return c.store.SearchSongs(ctx, query)
}

func (c *CachedLibrary) GetSongsCount(ctx context.Context) (int, error) {
	return c.store.GetSongsCount(ctx)
}

// Sorted returns every song in ascending title order. Songs sharing a title
// with an earlier one (by title, then artist) are left out of the view.
func (c *CachedLibrary) Sorted(ctx context.Context) ([]*music.Song, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureTree(ctx); err != nil {
		return nil, err
	}
	return cloneAll(c.tree.InOrder()), nil
}

// FindByTitle searches the title index for an exact match.
func (c *CachedLibrary) FindByTitle(ctx context.Context, title string) (*music.Song, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureTree(ctx); err != nil {
		return nil, err
	}
	return c.tree.Search(title).Clone(), nil
}

// Lookup returns the song with the given ID from the id index, or nil.
func (c *CachedLibrary) Lookup(ctx context.Context, id string) (*music.Song, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureTable(ctx); err != nil {
		return nil, err
	}
	s, _ := c.table.Get(id)
	return s.Clone(), nil
}

// Load reloads the id index from the store and returns the number of entries.
func (c *CachedLibrary) Load(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tableStale = true
	if err := c.ensureTable(ctx); err != nil {
		return 0, err
	}
	return c.table.Len(), nil
}

// Refresh reloads a single id index entry from the store. It returns nil when
// the song no longer exists.
func (c *CachedLibrary) Refresh(ctx context.Context, id string) (*music.Song, error) {
	song, err := c.store.GetSong(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.treeStale = true
	if song == nil {
		c.table.Remove(id)
		return nil, nil
	}
	if !c.tableStale {
		c.table.Put(song)
	}
	return song.Clone(), nil
}

// Stats reports the current index sizes, -1 when an index is stale.
func (c *CachedLibrary) Stats() (treeSize, tableSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	treeSize, tableSize = -1, -1
	if !c.treeStale {
		treeSize = c.tree.Len()
	}
	if !c.tableStale {
		tableSize = c.table.Len()
	}
	return treeSize, tableSize
}

// ensureTree must be called with mu held.
func (c *CachedLibrary) ensureTree(ctx context.Context) error {
	if !c.treeStale {
		return nil
	}
	songs, err := c.store.GetSongs(ctx)
	if err != nil {
		slog.Error("Failed to rebuild title index", "error", err)
		return err
	}
	c.tree = index.BuildTitleTree(songs)
	c.treeStale = false
	slog.Debug("Title index rebuilt", "songs", len(songs), "indexed", c.tree.Len(), "height", c.tree.Height())
	return nil
}

// ensureTable must be called with mu held.
func (c *CachedLibrary) ensureTable(ctx context.Context) error {
	if !c.tableStale {
		return nil
	}
	songs, err := c.store.GetSongs(ctx)
	if err != nil {
		slog.Error("Failed to load id index", "error", err)
		return err
	}
	c.table.Reset()
	c.table.Load(songs)
	c.tableStale = false
	slog.Debug("ID index loaded", "songs", c.table.Len())
	return nil
}

func cloneAll(songs []*music.Song) []*music.Song {
	out := make([]*music.Song, len(songs))
	for i, s := range songs {
		out[i] = s.Clone()
	}
	return out
}
