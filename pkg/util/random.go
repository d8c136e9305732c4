package util

import (
	"math/rand/v2"
	"time"
)

// NewRandom constructs a source of random numbers from a given seed.  A zero
// seed is replaced by the current time, hence runs differ unless a seed is
// fixed.  The seed actually used is returned so it can be reported.
func NewRandom(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	//
	return rand.New(rand.NewPCG(seed, seed)), seed
}
