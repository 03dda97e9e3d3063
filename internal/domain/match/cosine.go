package match

import "math"

// CosineSimilarity computes dot(a,b)/(|a|*|b|). It returns 0 when the
// vectors differ in length or either has zero norm, so callers never
// divide by zero. The result is symmetric and bounded in [-1, 1].
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
