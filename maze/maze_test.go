package maze

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/rng"
)

// build runs one algorithm on a fresh grid of the given kinds
func build(t *testing.T, alg Algorithm, gk grid.Kind, rk rng.Kind, w, h int, seed int32) grid.Grid {
	t.Helper()
	g, err := grid.New(gk, w, h)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	r, err := rng.New(rk, seed)
	if err != nil {
		t.Fatalf("rng.New failed: %v", err)
	}
	dispatch(g, r, alg, nil)
	return g
}

func TestLastRoom(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{1, -1}, {2, -1}, {3, 1}, {4, 1}, {5, 3}, {15, 13}, {16, 13}, {64, 61}, {65, 63},
	}
	for _, tt := range tests {
		if got := LastRoom(tt.n); got != tt.want {
			t.Errorf("LastRoom(%d): expected %d, got %d", tt.n, tt.want, got)
		}
	}
	if RoomCount(9, 9) != 16 {
		t.Errorf("Expected 16 rooms in 9x9, got %d", RoomCount(9, 9))
	}
}

func TestEnsureOdd(t *testing.T) {
	for in, want := range map[int]int{0: 3, 2: 3, 3: 3, 4: 3, 10: 9, 11: 11} {
		if got := EnsureOdd(in); got != want {
			t.Errorf("EnsureOdd(%d): expected %d, got %d", in, want, got)
		}
	}
}

func TestBacktrack_Scenario(t *testing.T) {
	g := grid.NewBitGrid(9, 9)
	Backtrack(g, rng.NewNetRandom(1), nil)

	if g.Get(0, 0) {
		t.Error("Expected (0,0) to be wall")
	}
	if !g.Get(1, 1) {
		t.Error("Expected (1,1) to be open")
	}
	if !IsPerfect(g) {
		t.Error("Expected a perfect maze")
	}
}

func TestKruskal_Scenario(t *testing.T) {
	g := grid.NewBitGrid(11, 11)
	Kruskal(g, rng.NewNetRandom(42), nil)
	if !IsPerfect(g) {
		t.Error("Expected Kruskal 11x11 seed 42 to be perfect")
	}
	if rep := Verify(g); !rep.Perfect() {
		t.Errorf("Expected perfect report, got %+v", rep)
	}
}

func TestPathFinder_Scenario(t *testing.T) {
	g := grid.NewBitGrid(15, 15)
	Backtrack(g, rng.NewNetRandom(9), nil)

	path, ok := FindDefaultPath(g)
	if !ok {
		t.Fatal("Expected a path")
	}
	first, last := path[0], path[len(path)-1]
	if first.Point() != (core.Point{X: 1, Y: 1}) {
		t.Errorf("Expected path to start at (1,1), got %v", first.Point())
	}
	if last.Point() != (core.Point{X: 13, Y: 13}) {
		t.Errorf("Expected path to end at (13,13), got %v", last.Point())
	}
	if first.Progress != 0 || last.Progress != 255 {
		t.Errorf("Expected progress 0..255, got %d..%d", first.Progress, last.Progress)
	}
	if err := ValidatePath(g, path, DefaultStart(), DefaultEnd(15, 15)); err != nil {
		t.Errorf("ValidatePath: %v", err)
	}
}

func TestAlgorithms_PerfectAndDeterministic(t *testing.T) {
	sizes := [][2]int{{5, 5}, {7, 5}, {5, 9}, {21, 21}, {33, 17}, {64, 64}, {16, 10}}
	seeds := []int32{1, 7, 42, -5}

	for _, alg := range Algorithms() {
		for _, gk := range grid.Kinds() {
			for _, rk := range rng.Kinds() {
				t.Run(string(alg)+"/"+string(gk)+"/"+string(rk), func(t *testing.T) {
					for _, sz := range sizes {
						for _, seed := range seeds {
							a := build(t, alg, gk, rk, sz[0], sz[1], seed)
							b := build(t, alg, gk, rk, sz[0], sz[1], seed)
							if !grid.Equal(a, b) {
								t.Fatalf("%dx%d seed %d: expected identical grids", sz[0], sz[1], seed)
							}
							if !IsPerfect(a) {
								t.Fatalf("%dx%d seed %d: IsPerfect rejected the maze", sz[0], sz[1], seed)
							}
							if rep := Verify(a); !rep.Perfect() {
								t.Fatalf("%dx%d seed %d: expected perfect report, got %+v", sz[0], sz[1], seed, rep)
							}
						}
					}
				})
			}
		}
	}
}

func TestAlgorithms_SeedsDiffer(t *testing.T) {
	for _, alg := range Algorithms() {
		a := build(t, alg, grid.KindBit, rng.KindNet, 31, 31, 1)
		b := build(t, alg, grid.KindBit, rng.KindNet, 31, 31, 2)
		if grid.Equal(a, b) {
			t.Errorf("%s: expected different seeds to give different mazes", alg)
		}
	}
}

func TestBacktrackTiersAgree(t *testing.T) {
	for _, seed := range []int32{1, 2, 3, 99} {
		a := grid.NewBitGrid(41, 29)
		b := grid.NewBitGrid(41, 29)
		Backtrack(a, rng.NewXorShift(seed), nil)
		BacktrackFast(b, rng.NewXorShift(seed), nil)
		if !grid.Equal(a, b) {
			t.Errorf("seed %d: expected both backtracker tiers to carve the same maze", seed)
		}
	}
}

func TestDivisionWithPath_MatchesSolver(t *testing.T) {
	for _, sz := range [][2]int{{3, 3}, {5, 5}, {9, 21}, {31, 31}, {64, 64}} {
		for _, seed := range []int32{1, 7, 123} {
			g := grid.NewBitGrid(sz[0], sz[1])
			route := DivisionWithPath(g, rng.NewNetRandom(seed), nil)

			plain := grid.NewBitGrid(sz[0], sz[1])
			Division(plain, rng.NewNetRandom(seed), nil)
			if !grid.Equal(g, plain) {
				t.Fatalf("%v seed %d: path tracking changed the carving", sz, seed)
			}

			solved, ok := FindDefaultPath(g)
			if !ok {
				t.Fatalf("%v seed %d: solver found no path", sz, seed)
			}
			if len(route) != len(solved) {
				t.Fatalf("%v seed %d: route length %d, solver length %d", sz, seed, len(route), len(solved))
			}
			for i := range route {
				if route[i] != solved[i].Point() {
					t.Fatalf("%v seed %d: step %d differs: %v vs %v", sz, seed, i, route[i], solved[i].Point())
				}
			}
		}
	}
}

func TestFindDefaultPath_SingleRoom(t *testing.T) {
	g := build(t, AlgBacktrack, grid.KindBit, rng.KindNet, 3, 3, 1)
	path, ok := FindDefaultPath(g)
	if !ok || len(path) != 1 {
		t.Fatalf("Expected a one cell path, got %v ok=%v", path, ok)
	}
	if path[0].Point() != DefaultStart() || path[0].Progress != 0 {
		t.Errorf("Expected (1,1) at progress 0, got %v", path[0])
	}
}

func TestDivisionPart_MatchesFull(t *testing.T) {
	const w, h, seed = 45, 37, 11
	full := grid.NewBitGrid(w, h)
	Division(full, rng.NewNetRandom(seed), nil)

	for _, win := range [][4]int{{0, 0, 8, 8}, {8, 8, 8, 8}, {40, 32, 8, 8}, {13, 5, 20, 3}} {
		part := grid.NewBitGridAt(win[0], win[1], win[2], win[3])
		DivisionPart(part, rng.NewNetRandom(seed), w, h, nil)
		for y := 0; y < win[3]; y++ {
			for x := 0; x < win[2]; x++ {
				gx, gy := win[0]+x, win[1]+y
				want := false
				if gx < w && gy < h {
					want = full.Get(gx, gy)
				}
				if part.Get(x, y) != want {
					t.Fatalf("window %v cell (%d,%d): expected %v", win, gx, gy, want)
				}
			}
		}
	}
}

func TestDivisionPart_CostFollowsWindow(t *testing.T) {
	const tile = 64
	for _, side := range []int{1 << 10, 1 << 20, 1 << 30} {
		part := grid.NewBitGridAt(side/2, side/3, tile, tile)
		d := divisionPart(part, rng.NewXorShift(7), side, side, nil)
		if d.splits == 0 {
			t.Fatalf("side %d: expected the window to be split", side)
		}
		if d.splits > 4096 {
			t.Errorf("side %d: expected splits bounded by the window, got %d", side, d.splits)
		}
		if d.scanned > d.splits*tile {
			t.Errorf("side %d: expected at most %d wall cells walked, got %d", side, d.splits*tile, d.scanned)
		}
	}
}

func TestProgress_DivisionReportsWalls(t *testing.T) {
	for _, alg := range []Algorithm{AlgDivision, AlgDivisionPath} {
		g := grid.NewBitGrid(25, 19)
		var reported []core.Point
		dispatch(g, rng.NewNetRandom(4), alg, func(x, y, step, total int) {
			reported = append(reported, core.Point{X: x, Y: y})
		})
		if len(reported) == 0 {
			t.Fatalf("%s: expected progress reports", alg)
		}
		for _, p := range reported {
			if p.X < 1 || p.Y < 1 || p.X > LastRoom(25) || p.Y > LastRoom(19) {
				t.Errorf("%s: expected reports inside the interior, got %v", alg, p)
			}
			if g.Get(p.X, p.Y) {
				t.Errorf("%s: expected reported cell %v to be wall", alg, p)
			}
		}
	}
}

func TestProgress_CountsEveryChange(t *testing.T) {
	for _, alg := range Algorithms() {
		g := grid.NewBitGrid(21, 15)
		steps, total := 0, 0
		lastStep := 0
		progress := func(x, y, step, tot int) {
			steps++
			total = tot
			if step != lastStep+1 {
				t.Fatalf("%s: expected consecutive steps, got %d after %d", alg, step, lastStep)
			}
			lastStep = step
		}
		dispatch(g, rng.NewNetRandom(3), alg, progress)
		if steps != total {
			t.Errorf("%s: expected %d reported steps, got %d", alg, total, steps)
		}
	}
}

func TestFindPath_NoRoute(t *testing.T) {
	g := grid.NewBitGrid(7, 7)
	g.Set(1, 1, true)
	g.Set(5, 5, true)
	if path, ok := FindDefaultPath(g); ok || path != nil {
		t.Errorf("Expected no path, got %v", path)
	}

	closed := grid.NewBitGrid(7, 7)
	if _, ok := FindDefaultPath(closed); ok {
		t.Error("Expected no path when start is wall")
	}
}

func TestFindPath_CustomEndpoints(t *testing.T) {
	g := grid.NewBoolGrid(21, 21)
	Kruskal(g, rng.NewXorShift(5), nil)
	start, end := core.Point{X: 19, Y: 1}, core.Point{X: 1, Y: 19}
	path, ok := FindPath(g, start, end)
	if !ok {
		t.Fatal("Expected a path")
	}
	if err := ValidatePath(g, path, start, end); err != nil {
		t.Error(err)
	}
}

func TestIsPerfect_RejectsLoop(t *testing.T) {
	g := grid.NewBitGrid(9, 9)
	Backtrack(g, rng.NewNetRandom(4), nil)

	// Open every wall around the pillar at (2,2): a loop is guaranteed
	for _, p := range []core.Point{{X: 1, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 3}} {
		g.Set(p.X, p.Y, true)
	}
	if IsPerfect(g) {
		t.Error("Expected IsPerfect to reject a maze with a loop")
	}
	if rep := Verify(g); rep.Cycles == 0 {
		t.Errorf("Expected Verify to count a cycle, got %+v", rep)
	}
}

func TestVerify_Disconnected(t *testing.T) {
	g := grid.NewBitGrid(7, 7)
	g.Set(1, 1, true)
	g.Set(5, 5, true)
	rep := Verify(g)
	if rep.Components != 2 || rep.Perfect() {
		t.Errorf("Expected 2 components and not perfect, got %+v", rep)
	}
}

func TestValidatePath_Errors(t *testing.T) {
	g := grid.NewBitGrid(5, 5)
	for x := 1; x <= 3; x++ {
		g.Set(x, 1, true)
	}
	start, end := core.Point{X: 1, Y: 1}, core.Point{X: 3, Y: 1}

	tests := []struct {
		name string
		path []core.PathPoint
	}{
		{"empty", nil},
		{"wrong start", []core.PathPoint{{X: 2, Y: 1}, {X: 3, Y: 1, Progress: 255}}},
		{"gap", []core.PathPoint{{X: 1, Y: 1}, {X: 3, Y: 1, Progress: 255}}},
		{"repeat", []core.PathPoint{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}},
		{"progress drop", []core.PathPoint{{X: 1, Y: 1, Progress: 10}, {X: 2, Y: 1, Progress: 5}, {X: 3, Y: 1, Progress: 255}}},
		{"through wall", []core.PathPoint{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 3, Y: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePath(g, tt.path, start, end); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	res, err := Generate(context.Background(), Options{
		Width: 25, Height: 25, Seed: 17,
		Algorithm: AlgKruskal, GridKind: grid.KindBool, RandomKind: rng.KindXorShift,
		Solve: true,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Seed != 17 || res.Algorithm != AlgKruskal {
		t.Errorf("Expected seed 17 kruskal, got %d %s", res.Seed, res.Algorithm)
	}
	if !IsPerfect(res.Grid) {
		t.Error("Expected perfect maze")
	}
	if err := ValidatePath(res.Grid, res.Path, DefaultStart(), DefaultEnd(25, 25)); err != nil {
		t.Errorf("ValidatePath: %v", err)
	}
	for _, p := range res.Path {
		if !res.PathGrid.Get(p.X, p.Y) {
			t.Fatalf("Expected path overlay to mark %v", p.Point())
		}
	}
	if grid.CountOpen(res.PathGrid) != len(res.Path) {
		t.Errorf("Expected overlay to mark exactly the path")
	}

	again, _ := Generate(context.Background(), Options{
		Width: 25, Height: 25, Seed: 17,
		Algorithm: AlgKruskal, GridKind: grid.KindBit, RandomKind: rng.KindXorShift,
	})
	if !grid.Equal(res.Grid, again.Grid) {
		t.Error("Expected grid kind not to change the maze")
	}
	if again.Path != nil {
		t.Error("Expected no path without Solve")
	}
}

func TestGenerate_DivisionPathRoute(t *testing.T) {
	res, err := Generate(context.Background(), Options{Width: 33, Height: 21, Seed: 3, Algorithm: AlgDivisionPath, Solve: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := ValidatePath(res.Grid, res.Path, DefaultStart(), DefaultEnd(33, 21)); err != nil {
		t.Error(err)
	}
}

func TestGenerate_UnknownKinds(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		opts  Options
		cause error
	}{
		{"algorithm", Options{Width: 9, Height: 9, Seed: 1, Algorithm: "prim"}, ErrUnknownAlgorithm},
		{"grid", Options{Width: 9, Height: 9, Seed: 1, GridKind: "sparse"}, grid.ErrUnknownKind},
		{"random", Options{Width: 9, Height: 9, Seed: 1, RandomKind: "lcg"}, rng.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(ctx, tt.opts)
			if errors.Cause(err) != tt.cause {
				t.Errorf("Expected cause %v, got %v", tt.cause, err)
			}
		})
	}
}

func TestGenerate_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, Options{Width: 9, Height: 9, Seed: 1}); errors.Cause(err) != context.Canceled {
		t.Errorf("Expected context.Canceled before start, got %v", err)
	}

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	res, err := Generate(ctx, Options{
		Width: 101, Height: 101, Seed: 1,
		Progress: func(x, y, step, total int) {
			if step == 10 {
				cancel()
			}
		},
	})
	if res != nil {
		t.Error("Expected no result after cancellation")
	}
	if errors.Cause(err) != context.Canceled {
		t.Errorf("Expected context.Canceled mid-run, got %v", err)
	}
}

func TestGenerate_RandomSeed(t *testing.T) {
	res, err := Generate(context.Background(), Options{Width: 11, Height: 11})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Seed == 0 {
		t.Error("Expected a non-zero resolved seed")
	}
	replay, _ := Generate(context.Background(), Options{Width: 11, Height: 11, Seed: res.Seed})
	if !grid.Equal(res.Grid, replay.Grid) {
		t.Error("Expected the reported seed to reproduce the maze")
	}
}

func TestCarve(t *testing.T) {
	g := grid.NewBitGrid(9, 9)
	if _, err := Carve(g, rng.NewNetRandom(1), "eller", nil); errors.Cause(err) != ErrUnknownAlgorithm {
		t.Errorf("Expected ErrUnknownAlgorithm, got %v", err)
	}
	route, err := Carve(g, rng.NewNetRandom(1), AlgDivisionPath, nil)
	if err != nil || len(route) == 0 {
		t.Errorf("Expected a route, got %v %v", route, err)
	}
}

func BenchmarkBacktrackFast(b *testing.B) {
	for b.Loop() {
		g := grid.NewBitGrid(513, 513)
		BacktrackFast(g, rng.NewXorShift(1), nil)
	}
}

func BenchmarkDivision(b *testing.B) {
	for b.Loop() {
		g := grid.NewBitGrid(513, 513)
		Division(g, rng.NewXorShift(1), nil)
	}
}
