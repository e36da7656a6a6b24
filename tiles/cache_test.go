package tiles

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/rng"
)

func divisionMaze(w, h int, seed int32) *grid.BitGrid {
	g := grid.NewBitGrid(w, h)
	maze.Division(g, rng.NewNetRandom(seed), nil)
	return g
}

func newDivisionCache(t *testing.T, capacity, tileSize, w, h int, seed int32, onEvict EvictFunc) *Cache {
	t.Helper()
	gen, err := DivisionParts(w, h, seed, rng.KindNet)
	if err != nil {
		t.Fatalf("DivisionParts failed: %v", err)
	}
	c, err := New(capacity, tileSize, gen, onEvict)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestCache_MatchesFullDivision(t *testing.T) {
	full := divisionMaze(64, 64, 7)
	c := newDivisionCache(t, 4, 8, 64, 64, 7, nil)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if c.Get(x, y) != full.Get(x, y) {
				t.Fatalf("Cell (%d,%d): expected %v", x, y, full.Get(x, y))
			}
		}
	}

	st := c.Stats()
	// Row-major scan crosses 8 tiles per row and 4 slots cannot hold a row
	if st.Misses != 512 {
		t.Errorf("Expected 512 misses for row-major scan, got %d", st.Misses)
	}
	if st.Evictions != 508 {
		t.Errorf("Expected 508 evictions, got %d", st.Evictions)
	}
}

func TestCache_EvictAndRequery(t *testing.T) {
	c := newDivisionCache(t, 1, 8, 64, 64, 7, nil)

	before := make([]bool, 0, 64)
	for y := 8; y < 16; y++ {
		for x := 8; x < 16; x++ {
			before = append(before, c.Get(x, y))
		}
	}

	// Any cell in another tile evicts the only resident one
	c.Get(40, 40)
	if res := c.Resident(); len(res) != 1 || res[0] != (core.Point{X: 40, Y: 40}) {
		t.Fatalf("Expected only tile (40,40) resident, got %v", res)
	}

	i := 0
	for y := 8; y < 16; y++ {
		for x := 8; x < 16; x++ {
			if c.Get(x, y) != before[i] {
				t.Fatalf("Cell (%d,%d) changed after eviction", x, y)
			}
			i++
		}
	}
	if c.Stats().Evictions != 2 {
		t.Errorf("Expected 2 evictions, got %d", c.Stats().Evictions)
	}
}

func TestCache_RandomAccess(t *testing.T) {
	const w, h = 73, 51
	full := divisionMaze(w, h, 1234)
	order := rng.NewXorShift(99)

	for _, capacity := range []int{1, 2, 5} {
		for _, size := range []int{4, 7, 16} {
			c := newDivisionCache(t, capacity, size, w, h, 1234, nil)
			for i := 0; i < 4000; i++ {
				x, y := order.NextN(w), order.NextN(h)
				if c.Get(x, y) != full.Get(x, y) {
					t.Fatalf("capacity %d size %d cell (%d,%d): expected %v", capacity, size, x, y, full.Get(x, y))
				}
			}
		}
	}
}

func TestCache_XorShiftParts(t *testing.T) {
	full := grid.NewBitGrid(45, 45)
	maze.Division(full, rng.NewXorShift(5), nil)

	gen, err := DivisionParts(45, 45, 5, rng.KindXorShift)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := New(3, 10, gen, nil)
	for y := 0; y < 45; y++ {
		for x := 0; x < 45; x++ {
			if c.Get(x, y) != full.Get(x, y) {
				t.Fatalf("Cell (%d,%d) differs", x, y)
			}
		}
	}
}

func TestCache_PastEdgeIsWall(t *testing.T) {
	c := newDivisionCache(t, 2, 16, 20, 20, 3, nil)
	for y := 20; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if c.Get(x, y) {
				t.Fatalf("Expected (%d,%d) past the maze edge to be wall", x, y)
			}
		}
	}
}

func TestCache_FIFOOrder(t *testing.T) {
	var evicted []core.Point
	c := newDivisionCache(t, 3, 8, 64, 64, 7, func(tile *Tile) {
		evicted = append(evicted, tile.Origin())
	})

	// Hits do not reorder the ring
	c.Get(0, 0)
	c.Get(8, 0)
	c.Get(16, 0)
	c.Get(0, 0)
	c.Get(24, 0)
	c.Get(32, 0)

	want := []core.Point{{X: 0, Y: 0}, {X: 8, Y: 0}}
	if len(evicted) != len(want) {
		t.Fatalf("Expected evictions %v, got %v", want, evicted)
	}
	for i := range want {
		if evicted[i] != want[i] {
			t.Errorf("Eviction %d: expected %v, got %v", i, want[i], evicted[i])
		}
	}

	res := c.Resident()
	wantRes := []core.Point{{X: 24, Y: 0}, {X: 32, Y: 0}, {X: 16, Y: 0}}
	for i := range wantRes {
		if res[i] != wantRes[i] {
			t.Errorf("Slot %d: expected %v, got %v", i, wantRes[i], res[i])
		}
	}
}

func TestCache_Stats(t *testing.T) {
	c := newDivisionCache(t, 2, 8, 32, 32, 2, nil)
	c.Get(1, 1) // miss
	c.Get(2, 1) // pinned
	c.Get(9, 1) // miss
	c.Get(1, 1) // ring hit
	c.Get(3, 3) // pinned

	st := c.Stats()
	want := Stats{PinnedHits: 2, Hits: 1, Misses: 2}
	if st != want {
		t.Errorf("Expected %+v, got %+v", want, st)
	}
}

func TestCache_TileOrigin(t *testing.T) {
	c := newDivisionCache(t, 1, 8, 32, 32, 2, nil)
	tests := []struct {
		x, y int
		want core.Point
	}{
		{0, 0, core.Point{}},
		{7, 8, core.Point{X: 0, Y: 8}},
		{31, 17, core.Point{X: 24, Y: 16}},
		{-1, -8, core.Point{X: -8, Y: -8}},
		{-9, 0, core.Point{X: -16, Y: 0}},
	}
	for _, tt := range tests {
		if got := c.TileOrigin(tt.x, tt.y); got != tt.want {
			t.Errorf("TileOrigin(%d,%d): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	gen := FullParts(grid.NewBitGrid(8, 8))
	if _, err := New(0, 8, gen, nil); err == nil {
		t.Error("Expected error for zero capacity")
	}
	if _, err := New(1, 0, gen, nil); err == nil {
		t.Error("Expected error for zero tile size")
	}
	if _, err := New(1, 8, nil, nil); err == nil {
		t.Error("Expected error for missing generator")
	}
	if _, err := DivisionParts(8, 8, 1, "mt19937"); err == nil {
		t.Error("Expected error for unknown random kind")
	}
}

func TestGeneratedParts(t *testing.T) {
	gen, res, err := GeneratedParts(context.Background(), maze.Options{
		Width: 41, Height: 33, Seed: 8, Algorithm: maze.AlgKruskal,
	})
	if err != nil {
		t.Fatalf("GeneratedParts failed: %v", err)
	}
	c, _ := New(2, 16, gen, nil)
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			want := x < 41 && y < 33 && res.Grid.Get(x, y)
			if c.Get(x, y) != want {
				t.Fatalf("Cell (%d,%d): expected %v", x, y, want)
			}
		}
	}
}

func TestArchive_RestoresEvicted(t *testing.T) {
	base, err := DivisionParts(64, 64, 7, rng.KindNet)
	if err != nil {
		t.Fatal(err)
	}
	calls := 0
	counted := func(x, y, w, h int) *Tile {
		calls++
		return base(x, y, w, h)
	}

	archive := NewArchive(nil)
	c, _ := New(1, 8, archive.Restore(counted), archive.Evict)
	full := divisionMaze(64, 64, 7)

	c.Get(0, 0)
	c.Get(8, 0)
	if archive.Len() != 1 {
		t.Fatalf("Expected 1 archived tile, got %d", archive.Len())
	}
	if archive.Bytes() == 0 {
		t.Error("Expected archived bytes")
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c.Get(x, y) != full.Get(x, y) {
				t.Fatalf("Cell (%d,%d) differs after restore", x, y)
			}
		}
	}
	if calls != 2 {
		t.Errorf("Expected the restored tile not to be regenerated, got %d generator calls", calls)
	}
}

func TestArchive_LoadMissing(t *testing.T) {
	a := NewArchive(nil)
	if _, ok, err := a.Load(0, 0); ok || err != nil {
		t.Errorf("Expected nothing stored, got ok=%v err=%v", ok, err)
	}
}

func TestCache_LogsEvictions(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	gen, _ := DivisionParts(32, 32, 1, rng.KindNet)
	c, _ := New(1, 8, gen, nil, WithLogger(logger))
	c.Get(0, 0)
	c.Get(8, 0)

	found := false
	for _, e := range hook.AllEntries() {
		if e.Message == "Evicting tile" {
			found = true
			if e.Data["tile_x"] != 0 || e.Data["slot"] != 0 {
				t.Errorf("Expected eviction of tile_x 0 slot 0, got %v", e.Data)
			}
		}
	}
	if !found {
		t.Error("Expected an eviction log entry")
	}
}

func BenchmarkCacheGet(b *testing.B) {
	gen, _ := DivisionParts(4097, 4097, 1, rng.KindXorShift)
	c, _ := New(16, 64, gen, nil)
	r := rng.NewXorShift(1)
	for b.Loop() {
		c.Get(r.NextN(512), r.NextN(512))
	}
}
