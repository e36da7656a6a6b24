package grid

import "math/bits"

// BitGrid packs cells row-major into uint64 words, one bit per cell
type BitGrid struct {
	x, y  int
	w, h  int
	words []uint64
}

// NewBitGrid allocates an all-wall w×h grid at origin (0,0)
func NewBitGrid(w, h int) *BitGrid {
	return NewBitGridAt(0, 0, w, h)
}

// NewBitGridAt allocates an all-wall w×h grid at logical origin (x,y)
func NewBitGridAt(x, y, w, h int) *BitGrid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &BitGrid{
		x: x, y: y,
		w: w, h: h,
		words: make([]uint64, (w*h+63)>>6),
	}
}

func (g *BitGrid) Width() int         { return g.w }
func (g *BitGrid) Height() int        { return g.h }
func (g *BitGrid) Origin() (int, int) { return g.x, g.y }

func (g *BitGrid) setOrigin(x, y int) { g.x, g.y = x, y }

// Get returns the cell at (x,y)
func (g *BitGrid) Get(x, y int) bool {
	i := y*g.w + x
	return g.words[i>>6]>>(uint(i)&63)&1 != 0
}

// Set writes the cell at (x,y) without branching on the value
func (g *BitGrid) Set(x, y int, open bool) {
	i := y*g.w + x
	shift := uint(i) & 63
	w := &g.words[i>>6]
	*w = *w&^(1<<shift) | uint64(b2u(open))<<shift
}

// Fill sets every cell; bits past the last cell stay clear so word compares remain exact
func (g *BitGrid) Fill(open bool) {
	var v uint64
	if open {
		v = ^uint64(0)
	}
	for i := range g.words {
		g.words[i] = v
	}
	g.clearTail()
}

// Clone returns an independent copy
func (g *BitGrid) Clone() Grid {
	c := &BitGrid{x: g.x, y: g.y, w: g.w, h: g.h, words: make([]uint64, len(g.words))}
	copy(c.words, g.words)
	return c
}

// Words exposes the backing words for bulk readers
func (g *BitGrid) Words() []uint64 { return g.words }

func (g *BitGrid) clearTail() {
	n := g.w * g.h
	if rem := n & 63; rem != 0 && len(g.words) > 0 {
		g.words[len(g.words)-1] &= (1 << uint(rem)) - 1
	}
}

func (g *BitGrid) countOpen() int {
	n := 0
	for _, w := range g.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// b2u converts a bool to 0/1; the compiler lowers this to a setcc
func b2u(b bool) uint8 {
	var v uint8
	if b {
		v = 1
	}
	return v
}
