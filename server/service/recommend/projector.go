package recommend

import "math"

// EmbeddingDim is the dimensionality of the shared embedding space. Job
// title embeddings are produced externally at this size (MiniLM-class
// sentence embedders), so it must stay in sync with the embedding provider.
const EmbeddingDim = 384

// ProjectFeatures aligns a variable-length raw feature vector with the
// fixed-dimension embedding space so the two can be compared directly:
// the vector is L2-normalized, then truncated or zero-padded to dim.
// Truncation drops trailing dimensions, which carry the sparse tail of the
// source features. An empty input maps to the all-zero vector ("no signal").
//
// This is a deterministic, lossy alignment, not a learned projection.
func ProjectFeatures(features []float64, dim int) []float64 {
	out := make([]float64, dim)
	if len(features) == 0 {
		return out
	}

	var norm float64
	for _, x := range features {
		norm += x * x
	}
	norm = math.Sqrt(norm)

	scale := 1.0
	if norm > 0 {
		scale = 1.0 / norm
	}

	n := len(features)
	if n > dim {
		n = dim
	}
	for i := 0; i < n; i++ {
		out[i] = features[i] * scale
	}
	return out
}
