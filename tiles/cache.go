package tiles

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mazegen/core"
)

// Stats counts cache activity since construction
type Stats struct {
	PinnedHits uint64 // answered by the pinned tile
	Hits       uint64 // found by scanning the ring
	Misses     uint64 // generated
	Evictions  uint64 // misses that replaced a resident tile
}

// Cache is a fixed-capacity ring of tiles with a pinned fast path. Eviction is FIFO: the
// slot index advances on every miss whether or not the slot was in use, and an evicted
// tile is regenerated from scratch when queried again.
// A Cache is not safe for concurrent use; give each goroutine its own, sharing the
// PartGenerator.
type Cache struct {
	tileSize int
	generate PartGenerator
	onEvict  EvictFunc

	ring   []*Tile
	slot   int
	pinned *Tile

	stats Stats
	log   logrus.FieldLogger
}

// Option configures a Cache
type Option func(*Cache)

// WithLogger routes eviction and generation logs to l
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a cache holding up to capacity tiles of tileSize×tileSize cells.
// onEvict may be nil.
func New(capacity, tileSize int, generate PartGenerator, onEvict EvictFunc, opts ...Option) (*Cache, error) {
	if capacity < 1 {
		return nil, errors.Errorf("tile cache capacity must be positive, got %d", capacity)
	}
	if tileSize < 1 {
		return nil, errors.Errorf("tile size must be positive, got %d", tileSize)
	}
	if generate == nil {
		return nil, errors.New("tile cache needs a part generator")
	}

	c := &Cache{
		tileSize: tileSize,
		generate: generate,
		onEvict:  onEvict,
		ring:     make([]*Tile, capacity),
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Get reads logical cell (x,y), generating its tile on a miss
func (c *Cache) Get(x, y int) bool {
	if p := c.pinned; p != nil && p.Covers(x, y) {
		c.stats.PinnedHits++
		return p.Get(x, y)
	}
	return c.Tile(x, y).Get(x, y)
}

// Tile returns the resident tile covering (x,y), generating it on a miss, and pins it
func (c *Cache) Tile(x, y int) *Tile {
	origin := c.TileOrigin(x, y)
	if p := c.pinned; p != nil && p.X == origin.X && p.Y == origin.Y {
		return p
	}

	for _, t := range c.ring {
		if t != nil && t.X == origin.X && t.Y == origin.Y {
			c.stats.Hits++
			c.pinned = t
			return t
		}
	}

	c.stats.Misses++
	t := c.generate(origin.X, origin.Y, c.tileSize, c.tileSize)

	slot := c.slot
	if old := c.ring[slot]; old != nil {
		c.stats.Evictions++
		c.log.WithFields(logrus.Fields{
			"tile_x": old.X,
			"tile_y": old.Y,
			"slot":   slot,
		}).Debug("Evicting tile")
		if c.onEvict != nil {
			c.onEvict(old)
		}
	}
	c.ring[slot] = t
	c.slot = (slot + 1) % len(c.ring)
	c.pinned = t

	c.log.WithFields(logrus.Fields{
		"tile_x": t.X,
		"tile_y": t.Y,
		"slot":   slot,
	}).Debug("Generated tile")
	return t
}

// TileOrigin returns the logical origin of the tile covering (x,y)
func (c *Cache) TileOrigin(x, y int) core.Point {
	return core.Point{X: floorDiv(x, c.tileSize) * c.tileSize, Y: floorDiv(y, c.tileSize) * c.tileSize}
}

// Resident lists the origins of resident tiles in slot order
func (c *Cache) Resident() []core.Point {
	out := make([]core.Point, 0, len(c.ring))
	for _, t := range c.ring {
		if t != nil {
			out = append(out, t.Origin())
		}
	}
	return out
}

// Stats returns a snapshot of the counters
func (c *Cache) Stats() Stats { return c.stats }

// Capacity returns the ring size
func (c *Cache) Capacity() int { return len(c.ring) }

// TileSize returns the tile edge length
func (c *Cache) TileSize() int { return c.tileSize }

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
