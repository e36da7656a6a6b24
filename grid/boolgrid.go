package grid

// BoolGrid stores one bool per cell, row-major
type BoolGrid struct {
	x, y  int
	w, h  int
	cells []bool
}

// NewBoolGrid allocates an all-wall w×h grid at origin (0,0)
func NewBoolGrid(w, h int) *BoolGrid {
	return NewBoolGridAt(0, 0, w, h)
}

// NewBoolGridAt allocates an all-wall w×h grid at logical origin (x,y)
func NewBoolGridAt(x, y, w, h int) *BoolGrid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &BoolGrid{x: x, y: y, w: w, h: h, cells: make([]bool, w*h)}
}

func (g *BoolGrid) Width() int         { return g.w }
func (g *BoolGrid) Height() int        { return g.h }
func (g *BoolGrid) Origin() (int, int) { return g.x, g.y }

func (g *BoolGrid) setOrigin(x, y int) { g.x, g.y = x, y }

func (g *BoolGrid) Get(x, y int) bool       { return g.cells[y*g.w+x] }
func (g *BoolGrid) Set(x, y int, open bool) { g.cells[y*g.w+x] = open }

func (g *BoolGrid) Fill(open bool) {
	for i := range g.cells {
		g.cells[i] = open
	}
}

func (g *BoolGrid) Clone() Grid {
	c := &BoolGrid{x: g.x, y: g.y, w: g.w, h: g.h, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}
