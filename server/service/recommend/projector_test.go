package recommend

import (
	"math"
	"testing"
)

func TestProjectFeaturesEmpty(t *testing.T) {
	got := ProjectFeatures(nil, EmbeddingDim)
	if len(got) != EmbeddingDim {
		t.Fatalf("ProjectFeatures() length = %d, want %d", len(got), EmbeddingDim)
	}
	for i, x := range got {
		if x != 0 {
			t.Fatalf("ProjectFeatures()[%d] = %v, want 0", i, x)
		}
	}
}

func TestProjectFeaturesUnitNorm(t *testing.T) {
	got := ProjectFeatures([]float64{3, 4}, 2)
	want := []float64{0.6, 0.8}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("ProjectFeatures()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProjectFeaturesPadding(t *testing.T) {
	got := ProjectFeatures([]float64{1, 2, 3}, 10)
	if len(got) != 10 {
		t.Fatalf("ProjectFeatures() length = %d, want 10", len(got))
	}

	var norm float64
	for _, x := range got[:3] {
		norm += x * x
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-9 {
		t.Errorf("leading components norm = %v, want 1.0", math.Sqrt(norm))
	}
	for i, x := range got[3:] {
		if x != 0 {
			t.Errorf("ProjectFeatures()[%d] = %v, want 0 padding", i+3, x)
		}
	}
}

func TestProjectFeaturesTruncation(t *testing.T) {
	features := make([]float64, 500)
	for i := range features {
		features[i] = float64(i)
	}

	got := ProjectFeatures(features, EmbeddingDim)
	if len(got) != EmbeddingDim {
		t.Fatalf("ProjectFeatures() length = %d, want %d", len(got), EmbeddingDim)
	}

	// Normalization happens before truncation, so the kept prefix has
	// norm in (0, 1].
	var norm float64
	for _, x := range got {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm <= 0 || norm > 1.0+1e-9 {
		t.Errorf("truncated norm = %v, want in (0, 1]", norm)
	}
}

func TestProjectFeaturesZeroVector(t *testing.T) {
	got := ProjectFeatures([]float64{0, 0, 0}, 5)
	if len(got) != 5 {
		t.Fatalf("ProjectFeatures() length = %d, want 5", len(got))
	}
	for i, x := range got {
		if x != 0 {
			t.Errorf("ProjectFeatures()[%d] = %v, want 0", i, x)
		}
	}
}

func TestProjectFeaturesExactDimension(t *testing.T) {
	features := []float64{1, 2, 3, 4}
	got := ProjectFeatures(features, 4)
	if len(got) != 4 {
		t.Fatalf("ProjectFeatures() length = %d, want 4", len(got))
	}
	var norm float64
	for _, x := range got {
		norm += x * x
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-9 {
		t.Errorf("norm = %v, want 1.0", math.Sqrt(norm))
	}
}
