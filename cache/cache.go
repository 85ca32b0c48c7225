// Package cache memoizes search results by state key.
package cache

import (
	"sync"

	"boardteacher/game"
)

// Entry is a memoized search result. Depth is the horizon it was computed
// with; an entry answers requests for that depth or less.
type Entry struct {
	Value int
	Move  game.Move
	Depth int
}

// deeper reports whether e should replace other when both describe the same
// position.
func (e Entry) deeper(other Entry) bool {
	return e.Depth > other.Depth
}

type Option func(c *Cache)

// WithMirror makes lookups fall back to the reflected position.
func WithMirror(mirror game.Mirrorer) Option {
	return func(c *Cache) {
		c.mirror = mirror
	}
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	codec   game.Codec
	mirror  game.Mirrorer
	entries map[game.Key]Entry
}

func New(codec game.Codec, options ...Option) *Cache {
	c := &Cache{
		codec:   codec,
		entries: make(map[game.Key]Entry),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Cache) Codec() game.Codec {
	return c.codec
}

// Lookup returns the entry for key computed at depth or deeper. When only the
// mirrored position is known its move is reflected back.
func (c *Cache) Lookup(key game.Key, depth int) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if entry, ok := c.entries[key]; ok && entry.Depth >= depth {
		return entry, true
	}
	if c.mirror == nil {
		return Entry{}, false
	}
	mirrored, err := c.mirror.MirrorKey(key)
	if err != nil {
		return Entry{}, false
	}
	entry, ok := c.entries[mirrored]
	if !ok || entry.Depth < depth {
		return Entry{}, false
	}
	if entry.Move != nil {
		entry.Move = c.mirror.MirrorMove(entry.Move)
	}
	return entry, true
}

// Store records entry for key unless a deeper result is already known.
func (c *Cache) Store(key game.Key, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, entry)
}

func (c *Cache) store(key game.Key, entry Entry) {
	if existing, ok := c.entries[key]; ok && existing.deeper(entry) {
		return
	}
	c.entries[key] = entry
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
