// Package rng provides the stateless 32-bit integer hash and host-side seed
// generator the move engine uses to draw a reproducible per-monomer
// direction and per-substep species choice.
//
// Wang32 must be bit-identical across implementations (spec §4.5): it is
// the canonical Wang/Jenkins 32-bit integer mixing function, reproduced
// here verbatim rather than sourced from a general-purpose hash library, so
// that two engines fed the same seed stream produce bit-identical moves.
package rng

import "math/rand"

// Wang32 is the canonical 32-bit Wang integer hash. Pure and stateless:
// same input always maps to the same output, on any platform.
func Wang32(a uint32) uint32 {
	a = (a ^ 61) ^ (a >> 16)
	a = a + (a << 3)
	a = a ^ (a >> 4)
	a = a * 0x27d4eb2d
	a = a ^ (a >> 15)
	return a
}

// DirectionIndex computes the direction id d ∈ [0,6) a monomer m proposes
// under per-substep seed sigma, per spec §4.5 step 2:
// d = hash(hash(m) xor sigma) mod 6.
func DirectionIndex(m uint32, sigma uint32, numDirections int) int {
	h := Wang32(Wang32(m) ^ sigma)
	return int(h % uint32(numDirections))
}

// SeedStream is a host-side generator of per-substep 32-bit seeds. It wraps
// a *rand.Rand the way builder.WithSeed seeds a deterministic RNG: the same
// construction seed always yields the same seed sequence, which is what
// gives RunSweeps its reproducibility guarantee (spec §8 scenario 6).
type SeedStream struct {
	src *rand.Rand
}

// NewSeedStream returns a SeedStream deterministically seeded by seed.
func NewSeedStream(seed int64) *SeedStream {
	return &SeedStream{src: rand.New(rand.NewSource(seed))}
}

// NextSeed draws the next 32-bit substep seed sigma.
func (s *SeedStream) NextSeed() uint32 {
	return s.src.Uint32()
}

// NextSpecies draws a uniformly random species id in [0,numColors).
func (s *SeedStream) NextSpecies(numColors int) int {
	return s.src.Intn(numColors)
}
