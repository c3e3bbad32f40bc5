package core

import (
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/blockfall/internal/bridge"
)

// NewRandSource returns a deterministic random source for a seed.
// A zero seed is replaced by the current time.
func NewRandSource(seed int64) bridge.RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	return rng.Uint32
}
