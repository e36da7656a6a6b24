package rng

import "math/bits"

// XorShift is xorshift64 (13, 17, 5). The int32 seed is spread through SplitMix64 so
// neighbouring seeds start far apart and the state is never zero.
type XorShift struct {
	state uint64
}

// NewXorShift seeds a fast generator
func NewXorShift(seed int32) *XorShift {
	r := &XorShift{}
	r.Reinitialise(seed)
	return r
}

func (r *XorShift) Reinitialise(seed int32) {
	s := splitmix(uint64(uint32(seed)))
	if s == 0 {
		s = 1
	}
	r.state = s
}

// Uint64 advances the state and returns it
func (r *XorShift) Uint64() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *XorShift) Next() int32 {
	for {
		v := int32(r.Uint64() >> 33)
		if v != 1<<31-1 {
			return v
		}
	}
}

// NextN is unbiased: Lemire multiply-shift with rejection of the short tail
func (r *XorShift) NextN(max int) int {
	if max <= 0 {
		return 0
	}
	n := uint64(max)
	hi, lo := bits.Mul64(r.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(r.Uint64(), n)
		}
	}
	return int(hi)
}

func (r *XorShift) NextRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.NextN(max-min)
}

func (r *XorShift) NextDouble() float64 {
	return float64(r.Uint64()>>11) * (1.0 / (1 << 53))
}

func (r *XorShift) NextBytes(buf []byte) {
	for i := 0; i < len(buf); {
		v := r.Uint64()
		for j := 0; j < 8 && i < len(buf); j++ {
			buf[i] = byte(v)
			v >>= 8
			i++
		}
	}
}
