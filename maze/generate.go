package maze

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/rng"
)

// Algorithm names a generation strategy
type Algorithm string

const (
	AlgBacktrack     Algorithm = "backtrack"
	AlgBacktrackFast Algorithm = "backtrack-fast"
	AlgKruskal       Algorithm = "kruskal"
	AlgDivision      Algorithm = "division"
	AlgDivisionPath  Algorithm = "division-path"
)

// ErrUnknownAlgorithm is the cause of every algorithm lookup failure
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithms lists every strategy Generate accepts
func Algorithms() []Algorithm {
	return []Algorithm{AlgBacktrack, AlgBacktrackFast, AlgKruskal, AlgDivision, AlgDivisionPath}
}

// ParseAlgorithm validates an algorithm name
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownAlgorithm, "algorithm %q", name)
}

// Options configures Generate
type Options struct {
	Width, Height int
	Seed          int32 // Optional (0 = Random)

	Algorithm  Algorithm // default AlgBacktrackFast
	GridKind   grid.Kind // default grid.KindBit
	RandomKind rng.Kind  // default rng.KindNet

	Progress Progress // Optional
	Solve    bool     // Find the path from DefaultStart to DefaultEnd
}

// Result is a generated maze. Grid and PathGrid are read-only once returned.
type Result struct {
	ID        uuid.UUID
	Seed      int32
	Algorithm Algorithm
	Grid      grid.Grid

	// Set when Options.Solve is true and a route exists
	Path     []core.PathPoint
	PathGrid grid.Grid

	Elapsed time.Duration
}

// abortSignal unwinds a generation from inside the progress callback
type abortSignal struct {
	err error
}

// ctxCheckMask sets how often the progress wrapper polls the context
const ctxCheckMask = 1<<10 - 1

// Generate builds a maze for a host. Unknown algorithm, grid or random kinds fail before any
// work. Cancelling ctx aborts between cell changes and returns the context error; the
// partial grid is dropped.
func Generate(ctx context.Context, opts Options) (res *Result, err error) {
	if opts.Algorithm == "" {
		opts.Algorithm = AlgBacktrackFast
	}
	if opts.GridKind == "" {
		opts.GridKind = grid.KindBit
	}
	if opts.RandomKind == "" {
		opts.RandomKind = rng.KindNet
	}
	if _, err := ParseAlgorithm(string(opts.Algorithm)); err != nil {
		return nil, err
	}

	g, err := grid.New(opts.GridKind, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = int32(time.Now().UnixNano())
		if seed == 0 {
			seed = 1
		}
	}
	r, err := rng.New(opts.RandomKind, seed)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user := opts.Progress
	if user == nil {
		user = NoProgress
	}
	progress := func(x, y, step, total int) {
		if step&ctxCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				panic(abortSignal{err: err})
			}
		}
		user(x, y, step, total)
	}

	defer func() {
		if rec := recover(); rec != nil {
			a, ok := rec.(abortSignal)
			if !ok {
				panic(rec)
			}
			res, err = nil, errors.Wrapf(a.err, "generation aborted (%s %dx%d seed %d)",
				opts.Algorithm, opts.Width, opts.Height, seed)
		}
	}()

	begin := time.Now()
	route := dispatch(g, r, opts.Algorithm, progress)

	res = &Result{
		ID:        uuid.New(),
		Seed:      seed,
		Algorithm: opts.Algorithm,
		Grid:      g,
	}

	if opts.Solve {
		if route != nil {
			res.Path = tagProgress(route)
		} else if path, ok := FindDefaultPath(g); ok {
			res.Path = path
		}
		if res.Path != nil {
			res.PathGrid = PathGrid(g, res.Path)
		}
	}
	res.Elapsed = time.Since(begin)
	return res, nil
}

// dispatch picks a concrete instantiation for the built-in kinds so the carving loop is
// compiled against concrete types; other registered kinds run through the interfaces
func dispatch(g grid.Grid, r rng.Random, alg Algorithm, progress Progress) []core.Point {
	switch gg := g.(type) {
	case *grid.BitGrid:
		switch rr := r.(type) {
		case *rng.NetRandom:
			return run(gg, rr, alg, progress)
		case *rng.XorShift:
			return run(gg, rr, alg, progress)
		}
		return run(gg, r, alg, progress)
	case *grid.BoolGrid:
		switch rr := r.(type) {
		case *rng.NetRandom:
			return run(gg, rr, alg, progress)
		case *rng.XorShift:
			return run(gg, rr, alg, progress)
		}
		return run(gg, r, alg, progress)
	}
	return run(g, r, alg, progress)
}

// run executes one algorithm; only the path-aware division returns a route
func run[G grid.Grid, R rng.Random](g G, r R, alg Algorithm, progress Progress) []core.Point {
	switch alg {
	case AlgBacktrack:
		Backtrack(g, r, progress)
	case AlgBacktrackFast:
		BacktrackFast(g, r, progress)
	case AlgKruskal:
		Kruskal(g, r, progress)
	case AlgDivision:
		Division(g, r, progress)
	case AlgDivisionPath:
		return DivisionWithPath(g, r, progress)
	}
	return nil
}

// Carve runs alg over g with r. It is the entry point for callers that build their own grid
// and generator, such as tile part generators.
func Carve[G grid.Grid, R rng.Random](g G, r R, alg Algorithm, progress Progress) ([]core.Point, error) {
	if _, err := ParseAlgorithm(string(alg)); err != nil {
		return nil, err
	}
	return run(g, r, alg, progress), nil
}
