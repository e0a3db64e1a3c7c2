package grng

import "testing"

func TestNextIntBounds(t *testing.T) {
	r := NewSeeded(42)
	for i := 0; i < 1000; i++ {
		n := r.NextInt(3, 7)
		if n < 3 || n > 7 {
			t.Fatalf("NextInt(3,7) returned %d, out of range", n)
		}
	}
}

func TestWeightedChoiceDeterministicUnderSeed(t *testing.T) {
	r1 := NewSeeded(7)
	r2 := NewSeeded(7)
	weights := []float64{1, 2, 3, 0}

	for i := 0; i < 20; i++ {
		a := r1.WeightedChoice(weights)
		b := r2.WeightedChoice(weights)
		if a != b {
			t.Fatalf("seeded RNGs diverged at iteration %d: %d vs %d", i, a, b)
		}
	}
}

func TestWeightedChoiceNeverPicksZeroWeight(t *testing.T) {
	r := NewSeeded(1)
	weights := []float64{0, 5, 0}
	for i := 0; i < 200; i++ {
		if idx := r.WeightedChoice(weights); idx != 1 {
			t.Fatalf("WeightedChoice picked index %d, only index 1 has weight", idx)
		}
	}
}

func TestWeightedSampleWithoutReplacementDistinct(t *testing.T) {
	r := NewSeeded(99)
	weights := []float64{1, 1, 1, 1, 1}

	picked := r.WeightedSampleWithoutReplacement(weights, 3)
	if len(picked) != 3 {
		t.Fatalf("expected 3 picks, got %d", len(picked))
	}

	seen := make(map[int]bool)
	for _, idx := range picked {
		if seen[idx] {
			t.Fatalf("index %d picked more than once", idx)
		}
		seen[idx] = true
	}
}

func TestWeightedSampleWithoutReplacementCapsAtLen(t *testing.T) {
	r := NewSeeded(3)
	weights := []float64{1, 1}
	picked := r.WeightedSampleWithoutReplacement(weights, 10)
	if len(picked) != 2 {
		t.Fatalf("expected 2 picks when k exceeds pool size, got %d", len(picked))
	}
}
