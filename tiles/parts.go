package tiles

import (
	"context"

	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/rng"
)

// DivisionParts generates tiles of a width×height recursive division maze locally. Each call
// builds its own generator from seed, so the returned PartGenerator may be shared between
// caches on different goroutines.
func DivisionParts(width, height int, seed int32, kind rng.Kind) (PartGenerator, error) {
	if _, err := rng.New(kind, seed); err != nil {
		return nil, err
	}

	return func(x, y, w, h int) *Tile {
		t := &Tile{X: x, Y: y, Size: w, Grid: grid.NewBitGridAt(x, y, w, h)}
		r, _ := rng.New(kind, seed)
		switch rr := r.(type) {
		case *rng.NetRandom:
			maze.DivisionPart(t.Grid, rr, width, height, nil)
		case *rng.XorShift:
			maze.DivisionPart(t.Grid, rr, width, height, nil)
		default:
			maze.DivisionPart(t.Grid, r, width, height, nil)
		}
		return t
	}, nil
}

// FullParts serves tiles cut from an already materialized maze. Cells past its edge are wall.
func FullParts(full grid.Grid) PartGenerator {
	fw, fh := full.Width(), full.Height()
	return func(x, y, w, h int) *Tile {
		t := &Tile{X: x, Y: y, Size: w, Grid: grid.NewBitGridAt(x, y, w, h)}
		for ly := 0; ly < h; ly++ {
			gy := y + ly
			if gy < 0 || gy >= fh {
				continue
			}
			for lx := 0; lx < w; lx++ {
				gx := x + lx
				if gx >= 0 && gx < fw && full.Get(gx, gy) {
					t.Grid.Set(lx, ly, true)
				}
			}
		}
		return t
	}
}

// GeneratedParts materializes a maze once with maze.Generate and serves tiles from it, for
// algorithms that cannot build a window on their own
func GeneratedParts(ctx context.Context, opts maze.Options) (PartGenerator, *maze.Result, error) {
	res, err := maze.Generate(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	return FullParts(res.Grid), res, nil
}
