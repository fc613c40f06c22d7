package world

import (
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Rand is the randomness the simulation draws from.
type Rand interface {
	// Float64 returns a uniform number in [0, 1).
	Float64() float64
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

// NewRand seeds a PCG source from seed. An empty seed uses the clock.
func NewRand(seed string) Rand {
	var s1 uint64
	if seed == "" {
		s1 = uint64(time.Now().UnixNano())
	} else {
		s1 = xxhash.Sum64String(seed)
	}
	s2 := xxhash.Sum64String("wildcatch")
	return rand.New(rand.NewPCG(s1, s2^s1))
}
