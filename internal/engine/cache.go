package engine

import (
	"sync"
	"sync/atomic"

	"github.com/hailam/chessrules/internal/board"
)

type cacheEntry struct {
	key    uint64 // full position hash, verified on probe
	limits Limits
	move   string
}

// Cache is an Analyzer that remembers answers by position hash, so
// repeated hints in the same position do not restart the engine search.
// An entry serves any request whose limits it covers.
type Cache struct {
	next Analyzer

	mu      sync.Mutex
	entries []cacheEntry
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewCache wraps next with a table of at least size entries (rounded up
// to a power of two).
func NewCache(next Analyzer, size int) *Cache {
	n := uint64(1)
	for n < uint64(size) {
		n <<= 1
	}
	return &Cache{
		next:    next,
		entries: make([]cacheEntry, n),
		mask:    n - 1,
	}
}

func covers(have, want Limits) bool {
	deep := want.Depth == 0 || (have.Depth != 0 && have.Depth >= want.Depth)
	long := want.MoveTime == 0 || (have.MoveTime != 0 && have.MoveTime >= want.MoveTime)
	if have.Depth == 0 && have.MoveTime == 0 {
		return false
	}
	return deep && long
}

// BestMove answers from the table when possible and asks the wrapped
// analyzer otherwise.
func (c *Cache) BestMove(fen string, limits Limits) (string, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return c.next.BestMove(fen, limits)
	}
	key := pos.Hash
	idx := key & c.mask

	c.probes.Add(1)
	c.mu.Lock()
	e := c.entries[idx]
	c.mu.Unlock()
	if e.key == key && e.move != "" && covers(e.limits, limits) {
		c.hits.Add(1)
		return e.move, nil
	}

	move, err := c.next.BestMove(fen, limits)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.entries[idx] = cacheEntry{key: key, limits: limits, move: move}
	c.mu.Unlock()
	return move, nil
}

// Clear forgets every entry, e.g. when the engine binary changes.
func (c *Cache) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// HitRate returns the fraction of probes answered from the table.
func (c *Cache) HitRate() float64 {
	probes := c.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(c.hits.Load()) / float64(probes)
}

// Close closes the wrapped analyzer.
func (c *Cache) Close() error {
	return c.next.Close()
}

// NewGame forwards to the wrapped analyzer when it supports it.
func (c *Cache) NewGame() error {
	if ng, ok := c.next.(interface{ NewGame() error }); ok {
		return ng.NewGame()
	}
	return nil
}
