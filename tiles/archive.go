package tiles

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
)

// Archive keeps encoded copies of evicted tiles in memory and hands them back instead of
// regenerating. It is safe for concurrent use so several caches can share one.
type Archive struct {
	mu    sync.RWMutex
	blobs map[core.Point][]byte
	size  int

	log logrus.FieldLogger
}

// NewArchive creates an empty archive; log may be nil
func NewArchive(log logrus.FieldLogger) *Archive {
	if log == nil {
		log = discardLogger()
	}
	return &Archive{blobs: make(map[core.Point][]byte), log: log}
}

// Store encodes t under its origin, replacing an older copy
func (a *Archive) Store(t *Tile) error {
	data, err := t.Grid.MarshalBinary()
	if err != nil {
		return errors.Wrapf(err, "encode tile (%d,%d)", t.X, t.Y)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if old, ok := a.blobs[t.Origin()]; ok {
		a.size -= len(old)
	}
	a.blobs[t.Origin()] = data
	a.size += len(data)
	return nil
}

// Evict is an EvictFunc that stores the tile and logs failures
func (a *Archive) Evict(t *Tile) {
	if err := a.Store(t); err != nil {
		a.log.WithError(err).Warn("Tile not archived")
	}
}

// Load decodes the tile stored at origin (x,y)
func (a *Archive) Load(x, y int) (*Tile, bool, error) {
	a.mu.RLock()
	data, ok := a.blobs[core.Point{X: x, Y: y}]
	a.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	g := &grid.BitGrid{}
	if err := g.UnmarshalBinary(data); err != nil {
		return nil, false, errors.Wrapf(err, "decode tile (%d,%d)", x, y)
	}
	return &Tile{X: x, Y: y, Size: g.Width(), Grid: g}, true, nil
}

// Restore wraps gen so archived tiles of the requested size are decoded instead of
// generated
func (a *Archive) Restore(gen PartGenerator) PartGenerator {
	return func(x, y, w, h int) *Tile {
		t, ok, err := a.Load(x, y)
		if err != nil {
			a.log.WithError(err).Warn("Archived tile unreadable, regenerating")
		}
		if ok && t.Grid.Width() == w && t.Grid.Height() == h {
			return t
		}
		return gen(x, y, w, h)
	}
}

// Len returns the number of archived tiles
func (a *Archive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.blobs)
}

// Bytes returns the encoded size of all archived tiles
func (a *Archive) Bytes() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.size
}
