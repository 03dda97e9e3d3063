package match

import (
	"math"
	"testing"
)

func TestCosineSimilarityIdentity(t *testing.T) {
	t.Parallel()
	v := []float64{0.5, -1.2, 3.4, 0.01}

	sim := CosineSimilarity(v, v)
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("Expected similarity 1.0 for identical vectors, got %v", sim)
	}
}

func TestCosineSimilaritySymmetry(t *testing.T) {
	t.Parallel()
	a := []float64{1, 2, 3}
	b := []float64{-2, 0.5, 4}

	if CosineSimilarity(a, b) != CosineSimilarity(b, a) {
		t.Error("Expected cosine similarity to be symmetric")
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	t.Parallel()
	vectors := [][]float64{
		{1, 0, 0},
		{-1, 0, 0},
		{0.3, -0.7, 0.2},
		{100, 200, -300},
		{0.0001, 0.0002, 0.0003},
	}

	for i, a := range vectors {
		for j, b := range vectors {
			sim := CosineSimilarity(a, b)
			if sim < -1.0-1e-9 || sim > 1.0+1e-9 {
				t.Errorf("similarity(%d,%d) = %v out of [-1,1]", i, j, sim)
			}
		}
	}
}

func TestCosineSimilarityOppositeVectors(t *testing.T) {
	t.Parallel()
	a := []float64{1, 2, 3}
	b := []float64{-1, -2, -3}

	sim := CosineSimilarity(a, b)
	if math.Abs(sim+1.0) > 1e-9 {
		t.Errorf("Expected similarity -1.0 for opposite vectors, got %v", sim)
	}
}

func TestCosineSimilarityZeroNorm(t *testing.T) {
	t.Parallel()
	zero := []float64{0, 0, 0}
	v := []float64{1, 2, 3}

	if sim := CosineSimilarity(zero, v); sim != 0 {
		t.Errorf("Expected 0 for zero-norm vector, got %v", sim)
	}
	if sim := CosineSimilarity(v, zero); sim != 0 {
		t.Errorf("Expected 0 for zero-norm vector, got %v", sim)
	}
	if sim := CosineSimilarity(zero, zero); sim != 0 {
		t.Errorf("Expected 0 for two zero-norm vectors, got %v", sim)
	}
}

func TestCosineSimilarityLengthMismatch(t *testing.T) {
	t.Parallel()
	if sim := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3}); sim != 0 {
		t.Errorf("Expected 0 for mismatched lengths, got %v", sim)
	}
	if sim := CosineSimilarity(nil, nil); sim != 0 {
		t.Errorf("Expected 0 for empty vectors, got %v", sim)
	}
}
