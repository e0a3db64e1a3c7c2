// Package grng centralizes every random decision the game engine makes.
// Floor generation, combat rolls, forging, and merchant stocking all take
// an RNG handle rather than calling math/rand globally, so tests can
// inject a seeded source and replay a session deterministically.
package grng

import "math/rand"

// RNG is the interface every probabilistic decision in the engine goes
// through. Production code uses New (process-seeded); tests use
// NewSeeded for reproducible runs.
type RNG interface {
	// NextFloat returns a float64 in [0, 1).
	NextFloat() float64

	// NextInt returns an integer in [a, b] (inclusive on both ends).
	NextInt(a, b int) int

	// WeightedChoice picks an index into weights proportional to its
	// weight. Panics if weights is empty or all weights are <= 0.
	WeightedChoice(weights []float64) int

	// WeightedSampleWithoutReplacement draws up to k distinct indices
	// from weights, each round re-weighted over the remaining pool.
	// Returns fewer than k indices if k exceeds len(weights).
	WeightedSampleWithoutReplacement(weights []float64, k int) []int
}

// rng wraps a *rand.Rand to satisfy RNG.
type rng struct {
	r *rand.Rand
}

// New returns an RNG seeded from the process RNG (time + entropy via
// math/rand's default source reseed). Use one instance per session so
// concurrent sessions never share mutable RNG state.
func New() RNG {
	return &rng{r: rand.New(rand.NewSource(rand.Int63()))}
}

// NewSeeded returns a deterministic RNG for tests.
func NewSeeded(seed int64) RNG {
	return &rng{r: rand.New(rand.NewSource(seed))}
}

func (g *rng) NextFloat() float64 {
	return g.r.Float64()
}

func (g *rng) NextInt(a, b int) int {
	if b < a {
		a, b = b, a
	}
	return a + g.r.Intn(b-a+1)
}

func (g *rng) WeightedChoice(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		panic("grng: WeightedChoice called with no positive weights")
	}

	target := g.r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return i
		}
	}
	// Floating point rounding: fall back to the last positive-weight index.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

func (g *rng) WeightedSampleWithoutReplacement(weights []float64, k int) []int {
	remaining := make([]float64, len(weights))
	copy(remaining, weights)

	indices := make([]int, len(weights))
	for i := range indices {
		indices[i] = i
	}

	var picked []int
	for len(picked) < k && len(indices) > 0 {
		pool := make([]float64, len(indices))
		for i, idx := range indices {
			pool[i] = remaining[idx]
		}

		hasPositive := false
		for _, w := range pool {
			if w > 0 {
				hasPositive = true
				break
			}
		}
		if !hasPositive {
			break
		}

		choice := g.WeightedChoice(pool)
		picked = append(picked, indices[choice])
		indices = append(indices[:choice], indices[choice+1:]...)
	}

	return picked
}
