package engine

import "github.com/ttc24/2048-Duel/internal/board"

// transCache memoizes chance-node values keyed by the canonical
// (rotation-folded) board form. It lives for a single search call and
// is discarded afterwards, so it needs no locking.
type transCache struct {
	entries map[board.Board]cacheEntry
	probes  int
	hits    int
}

type cacheEntry struct {
	depth int
	value float64
}

func newTransCache() *transCache {
	return &transCache{entries: make(map[board.Board]cacheEntry)}
}

// probe returns a cached value if one was recorded at this depth or
// deeper. Shallower entries are never reused for deeper queries.
func (c *transCache) probe(b board.Board, depth int) (float64, bool) {
	c.probes++
	entry, ok := c.entries[board.Canonical(b)]
	if !ok || entry.depth < depth {
		return 0, false
	}
	c.hits++
	return entry.value, true
}

// store records a chance-node value, keeping the deepest result seen
// for each canonical position.
func (c *transCache) store(b board.Board, depth int, value float64) {
	key := board.Canonical(b)
	if existing, ok := c.entries[key]; ok && existing.depth > depth {
		return
	}
	c.entries[key] = cacheEntry{depth: depth, value: value}
}
