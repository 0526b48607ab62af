package domain

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Roller is the random source every generator draws from. *rand.Rand satisfies
// it; tests supply scripted rolls.
type Roller interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewSeededRoller returns a deterministic PCG source derived from seed and salt.
// Salting by region id keeps two regions with the same seed independent.
func NewSeededRoller(seed int64, salt string) *rand.Rand {
	// Non-cryptographic PRNG is intentional for reproducible simulation.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, salt+":a"), seedWord(seed, salt+":b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d:%s", seed, salt)
	return h.Sum64()
}

// RollDie returns a uniform roll in [1, sides].
func RollDie(r Roller, sides int) int {
	if sides <= 1 {
		return 1
	}
	return r.IntN(sides) + 1
}

// OneIn reports whether a 1-in-n chance hit.
func OneIn(r Roller, n int) bool {
	return RollDie(r, n) == 1
}
