package engine

import "testing"

func TestRunSeedDeterminism(t *testing.T) {
	r1, _ := NewRunSeed("alpha-seed")
	r2, _ := NewRunSeed("alpha-seed")
	s1 := r1.Stream("x").Intn(1000000)
	s2 := r2.Stream("x").Intn(1000000)
	if s1 != s2 {
		t.Fatalf("streams differ: %d vs %d", s1, s2)
	}
	c1 := r1.Stream("x").Child("y").Intn(1000000)
	c2 := r2.Stream("x").Child("y").Intn(1000000)
	if c1 != c2 {
		t.Fatalf("child streams differ: %d vs %d", c1, c2)
	}
}

func TestRunSeedContextChangesStreams(t *testing.T) {
	r, _ := NewRunSeed("beta-seed")
	a := r.WithRunContext("run-a").Stream("x").Intn(1000000)
	b := r.WithRunContext("run-b").Stream("x").Intn(1000000)
	if a == b {
		t.Fatalf("different run contexts produced identical streams")
	}
}

func TestNewRunSeedRejectsEmpty(t *testing.T) {
	if _, err := NewRunSeed(""); err == nil {
		t.Fatal("expected error for empty seed text")
	}
}

func TestIntBetweenBounds(t *testing.T) {
	seed, _ := NewRunSeed("bounds")
	s := seed.Stream("b")
	for i := 0; i < 1000; i++ {
		v := s.IntBetween(5, 7)
		if v < 5 || v > 7 {
			t.Fatalf("IntBetween out of range: %d", v)
		}
	}
}

func TestWeightedIndexDistribution(t *testing.T) {
	seed, _ := NewRunSeed("weighted-dist")
	s := seed.Stream("w")
	weights := []float64{1, 1, 8}
	counts := make([]int, 3)
	total := 10000
	for i := 0; i < total; i++ {
		idx := s.WeightedIndex(weights)
		if idx < 0 || idx > 2 {
			t.Fatalf("index out of range: %d", idx)
		}
		counts[idx]++
	}
	frac := float64(counts[2]) / float64(total)
	if frac < 0.75 || frac > 0.85 {
		t.Fatalf("heavy candidate drawn %.3f of the time, want ~0.80", frac)
	}
}

func TestWeightedIndexSkipsZeroWeights(t *testing.T) {
	seed, _ := NewRunSeed("weighted-zero")
	s := seed.Stream("w")
	weights := []float64{0, 3, 0}
	for i := 0; i < 200; i++ {
		if idx := s.WeightedIndex(weights); idx != 1 {
			t.Fatalf("expected index 1, got %d", idx)
		}
	}
	if idx := s.WeightedIndex([]float64{0, 0}); idx != -1 {
		t.Fatalf("expected -1 for all-zero weights, got %d", idx)
	}
}

func TestSampleIndices(t *testing.T) {
	seed, _ := NewRunSeed("sample")
	got := seed.Stream("s").SampleIndices(10, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 indices, got %d", len(got))
	}
	seen := map[int]bool{}
	for _, idx := range got {
		if idx < 0 || idx >= 10 {
			t.Fatalf("index out of range: %d", idx)
		}
		if seen[idx] {
			t.Fatalf("duplicate index: %d", idx)
		}
		seen[idx] = true
	}
}
