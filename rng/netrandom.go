package rng

import "math"

const (
	netMBig  = math.MaxInt32
	netMSeed = 161803398
)

// NetRandom is Knuth's subtractive generator as shipped in the legacy seeded .NET System.Random.
// Its output matches that implementation bit for bit, so golden mazes stay stable.
// NextN scales a sample rather than rejecting, which is what the reference sequence requires.
type NetRandom struct {
	seedArray [56]int32
	inext     int
	inextp    int
}

// NewNetRandom seeds a reference generator
func NewNetRandom(seed int32) *NetRandom {
	r := &NetRandom{}
	r.Reinitialise(seed)
	return r
}

// Reinitialise rebuilds the state table exactly as construction does
func (r *NetRandom) Reinitialise(seed int32) {
	var subtraction int32
	if seed == math.MinInt32 {
		subtraction = math.MaxInt32
	} else if seed < 0 {
		subtraction = -seed
	} else {
		subtraction = seed
	}

	a := &r.seedArray
	*a = [56]int32{}

	mj := netMSeed - subtraction
	a[55] = mj
	mk := int32(1)
	for i := 1; i < 55; i++ {
		ii := (21 * i) % 55
		a[ii] = mk
		mk = mj - mk
		if mk < 0 {
			mk += netMBig
		}
		mj = a[ii]
	}
	for k := 1; k < 5; k++ {
		for i := 1; i < 56; i++ {
			a[i] -= a[1+(i+30)%55]
			if a[i] < 0 {
				a[i] += netMBig
			}
		}
	}
	r.inext = 0
	r.inextp = 21
}

func (r *NetRandom) internalSample() int32 {
	locINext := r.inext + 1
	if locINext >= 56 {
		locINext = 1
	}
	locINextp := r.inextp + 1
	if locINextp >= 56 {
		locINextp = 1
	}

	ret := r.seedArray[locINext] - r.seedArray[locINextp]
	if ret == netMBig {
		ret--
	}
	if ret < 0 {
		ret += netMBig
	}

	r.seedArray[locINext] = ret
	r.inext = locINext
	r.inextp = locINextp
	return ret
}

func (r *NetRandom) sample() float64 {
	return float64(r.internalSample()) * (1.0 / netMBig)
}

func (r *NetRandom) largeRangeSample() float64 {
	result := int(r.internalSample())
	if r.internalSample()%2 == 0 {
		result = -result
	}
	d := float64(result)
	d += math.MaxInt32 - 1
	d /= 2*math.MaxInt32 - 1
	return d
}

func (r *NetRandom) Next() int32 {
	return r.internalSample()
}

func (r *NetRandom) NextN(max int) int {
	if max <= 0 {
		return 0
	}
	return int(r.sample() * float64(max))
}

func (r *NetRandom) NextRange(min, max int) int {
	if max <= min {
		return min
	}
	span := int64(max) - int64(min)
	if span <= math.MaxInt32 {
		return int(r.sample()*float64(span)) + min
	}
	return int(int64(r.largeRangeSample()*float64(span)) + int64(min))
}

func (r *NetRandom) NextDouble() float64 {
	return r.sample()
}

func (r *NetRandom) NextBytes(buf []byte) {
	for i := range buf {
		buf[i] = byte(r.internalSample())
	}
}
