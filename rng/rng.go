// Package rng provides deterministic seeded generators. Every generator reproduces its
// sequence from an int32 seed, and Reinitialise(k) behaves exactly like a fresh generator
// built from k. Tile regeneration depends on that equivalence.
package rng

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Random is the generator contract used by the maze algorithms.
// Algorithms take it as a type parameter so the concrete generator is fixed at compile time.
type Random interface {
	// Next returns a value in [0, MaxInt32)
	Next() int32
	// NextN returns a value in [0, max); max <= 0 yields 0
	NextN(max int) int
	// NextRange returns a value in [min, max); max <= min yields min
	NextRange(min, max int) int
	// NextDouble returns a value in [0, 1)
	NextDouble() float64
	// NextBytes fills buf
	NextBytes(buf []byte)
	// Reinitialise restarts the sequence for seed
	Reinitialise(seed int32)
}

// Kind selects a generator implementation
type Kind string

const (
	KindNet      Kind = "net"      // reference subtractive generator
	KindXorShift Kind = "xorshift" // fast xorshift64
)

// Factory builds a generator from a seed
type Factory func(seed int32) Random

// ErrUnknownKind is the cause of every factory lookup failure
var ErrUnknownKind = errors.New("unknown random kind")

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Kind]Factory)
)

func init() {
	Register(KindNet, func(seed int32) Random { return NewNetRandom(seed) })
	Register(KindXorShift, func(seed int32) Random { return NewXorShift(seed) })
}

// Register adds a generator factory by kind
func Register(kind Kind, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[kind] = factory
}

// New builds a generator of the given kind, failing immediately for unregistered kinds
func New(kind Kind, seed int32) (Random, error) {
	factoriesMu.RLock()
	f, ok := factories[kind]
	factoriesMu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "random kind %q", string(kind))
	}
	return f(seed), nil
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

// DeriveSeed mixes a parent seed and a stream id into an independent int32 seed (SplitMix64 finalizer)
func DeriveSeed(parent int32, stream uint64) int32 {
	x := uint64(uint32(parent)) ^ (stream + 0x9e3779b97f4a7c15)
	x = splitmix(x)
	return int32(uint32(x >> 32))
}

func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
