// Package grid provides the boolean cell storage mazes are carved into.
// false is wall, true is open. Coordinates are local to the grid; Origin reports where the
// grid sits inside a larger logical maze when it is a tile.
// Get and Set do not bounds check.
package grid

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Grid is the storage contract shared by all kinds
type Grid interface {
	Width() int
	Height() int
	Origin() (x, y int)
	Get(x, y int) bool
	Set(x, y int, open bool)
	Fill(open bool)
	Clone() Grid
}

// Kind selects a storage implementation
type Kind string

const (
	KindBit  Kind = "bit"  // one bit per cell packed into uint64 words
	KindBool Kind = "bool" // one bool per cell
)

// Factory allocates a grid of the given size at the given logical origin
type Factory func(x, y, w, h int) Grid

// ErrUnknownKind is the cause of every factory lookup failure
var ErrUnknownKind = errors.New("unknown grid kind")

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Kind]Factory)
)

func init() {
	Register(KindBit, func(x, y, w, h int) Grid { return NewBitGridAt(x, y, w, h) })
	Register(KindBool, func(x, y, w, h int) Grid { return NewBoolGridAt(x, y, w, h) })
}

// Register adds a storage factory by kind, replacing any previous one
func Register(kind Kind, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[kind] = factory
}

// Lookup resolves a factory, failing immediately for unregistered kinds
func Lookup(kind Kind) (Factory, error) {
	factoriesMu.RLock()
	f, ok := factories[kind]
	factoriesMu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "grid kind %q", string(kind))
	}
	return f, nil
}

// New allocates a w×h grid of the given kind at origin (0,0)
func New(kind Kind, w, h int) (Grid, error) {
	return NewAt(kind, 0, 0, w, h)
}

// NewAt allocates a w×h grid of the given kind at logical origin (x,y)
func NewAt(kind Kind, x, y, w, h int) (Grid, error) {
	f, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	return f(x, y, w, h), nil
}

// Kinds returns registered kinds in sorted order
func Kinds() []Kind {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	kinds := make([]Kind, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// CloneInto copies src cells and origin into dst, which must have the same size
func CloneInto(src, dst Grid) error {
	if src.Width() != dst.Width() || src.Height() != dst.Height() {
		return errors.Errorf("grid size mismatch: source %dx%d, target %dx%d",
			src.Width(), src.Height(), dst.Width(), dst.Height())
	}

	switch s := src.(type) {
	case *BitGrid:
		if d, ok := dst.(*BitGrid); ok {
			copy(d.words, s.words)
			d.x, d.y = s.x, s.y
			return nil
		}
	case *BoolGrid:
		if d, ok := dst.(*BoolGrid); ok {
			copy(d.cells, s.cells)
			d.x, d.y = s.x, s.y
			return nil
		}
	}

	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			dst.Set(x, y, src.Get(x, y))
		}
	}
	if o, ok := dst.(originSetter); ok {
		o.setOrigin(src.Origin())
	}
	return nil
}

// Equal reports whether two grids have the same size and cells; storage kind and origin are ignored
func Equal(a, b Grid) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	if ab, ok := a.(*BitGrid); ok {
		if bb, ok := b.(*BitGrid); ok {
			for i := range ab.words {
				if ab.words[i] != bb.words[i] {
					return false
				}
			}
			return true
		}
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.Get(x, y) != b.Get(x, y) {
				return false
			}
		}
	}
	return true
}

// CountOpen returns the number of open cells
func CountOpen(g Grid) int {
	if bg, ok := g.(*BitGrid); ok {
		return bg.countOpen()
	}
	n := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Get(x, y) {
				n++
			}
		}
	}
	return n
}

type originSetter interface {
	setOrigin(x, y int)
}
