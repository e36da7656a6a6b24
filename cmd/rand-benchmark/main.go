package main

import (
	"flag"
	"fmt"
	rand2 "math/rand/v2"
	"testing"

	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/rng"
)

type benchmark struct {
	name  string
	calls int // work units per iteration, for the per-call column
	fn    func(b *testing.B)
}

func randomBenchmarks(n, bound int) []benchmark {
	return []benchmark{
		{"NetRandom.NextN (reference)", n, func(b *testing.B) {
			r := rng.NewNetRandom(12345)
			for b.Loop() {
				for i := 0; i < n; i++ {
					_ = r.NextN(bound)
				}
			}
		}},
		{"XorShift.NextN (13,17,5 Lemire)", n, func(b *testing.B) {
			r := rng.NewXorShift(12345)
			for b.Loop() {
				for i := 0; i < n; i++ {
					_ = r.NextN(bound)
				}
			}
		}},
		{"XorShift.Uint64 raw", n, func(b *testing.B) {
			r := rng.NewXorShift(12345)
			for b.Loop() {
				for i := 0; i < n; i++ {
					_ = r.Uint64()
				}
			}
		}},
		{"rng.Random interface NextN", n, func(b *testing.B) {
			r, _ := rng.New(rng.KindXorShift, 12345)
			for b.Loop() {
				for i := 0; i < n; i++ {
					_ = r.NextN(bound)
				}
			}
		}},
		{"math/rand/v2.PCG.IntN", n, func(b *testing.B) {
			r := rand2.New(rand2.NewPCG(12345, 67890))
			for b.Loop() {
				for i := 0; i < n; i++ {
					_ = r.IntN(bound)
				}
			}
		}},
	}
}

func gridBenchmarks(side int) []benchmark {
	var out []benchmark
	for _, kind := range grid.Kinds() {
		out = append(out, benchmark{fmt.Sprintf("%s grid Set+Get %dx%d", kind, side, side), side * side, func(b *testing.B) {
			g, _ := grid.New(kind, side, side)
			for b.Loop() {
				for y := 0; y < side; y++ {
					for x := 0; x < side; x++ {
						g.Set(x, y, !g.Get(x, y))
					}
				}
			}
		}})
	}
	return out
}

func generationBenchmarks(side int) []benchmark {
	var out []benchmark
	for _, alg := range maze.Algorithms() {
		for _, rk := range rng.Kinds() {
			out = append(out, benchmark{fmt.Sprintf("%s/%s %dx%d", alg, rk, side, side), side * side, func(b *testing.B) {
				for b.Loop() {
					g := grid.NewBitGrid(side, side)
					r, _ := rng.New(rk, 1)
					if _, err := maze.Carve(g, r, alg, nil); err != nil {
						b.Fatal(err)
					}
				}
			}})
		}
	}
	return out
}

func run(title, unit string, bms []benchmark) {
	fmt.Printf("\n%s\n", title)
	fmt.Printf("%-44s %14s %12s\n", "Name", "ns/op", "ns/"+unit)
	fmt.Println("------------------------------------------------------------------------")
	for _, bm := range bms {
		result := testing.Benchmark(bm.fn)
		if result.N == 0 {
			fmt.Printf("%-44s %14s\n", bm.name, "failed")
			continue
		}
		nsPerOp := float64(result.T.Nanoseconds()) / float64(result.N)
		fmt.Printf("%-44s %11.1f ns %9.2f ns\n", bm.name, nsPerOp, nsPerOp/float64(bm.calls))
	}
}

func main() {
	n := flag.Int("n", 100, "calls per iteration")
	bound := flag.Int("bound", 1000, "NextN bound")
	side := flag.Int("side", 257, "grid side for grid and generation benchmarks")
	only := flag.String("only", "", "run one group: rand, grid or gen")
	flag.Parse()

	if *only == "" || *only == "rand" {
		run(fmt.Sprintf("Random: %d calls per iteration, bound=%d", *n, *bound), "call", randomBenchmarks(*n, *bound))
	}
	if *only == "" || *only == "grid" {
		run("Grid storage", "cell", gridBenchmarks(*side))
	}
	if *only == "" || *only == "gen" {
		run("Generation", "cell", generationBenchmarks(maze.EnsureOdd(*side)))
	}

	// Both kinds are deterministic per seed but unrelated to each other
	fmt.Println("\nSequence divergence (seed=42, 5 values, bound=100):")
	for _, kind := range rng.Kinds() {
		r, _ := rng.New(kind, 42)
		fmt.Printf("  %-10s", kind)
		for i := 0; i < 5; i++ {
			fmt.Printf("%3d ", r.NextN(100))
		}
		fmt.Println()
	}
}
