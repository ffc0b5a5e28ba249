package recommend

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestRankOrdersDescending(t *testing.T) {
	target := []float64{1, 2, 3, 4}
	candidates := []Candidate[string]{
		{Item: "u3", Vector: []float64{4, 3, 2, 1}},
		{Item: "u2", Vector: []float64{2, 4, 6, 8}},
	}

	got := Rank(target, candidates, Pearson, 10)
	if len(got) != 2 {
		t.Fatalf("Rank() returned %d results, want 2", len(got))
	}
	if got[0].Item != "u2" || math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("Rank()[0] = %v (score %v), want u2 with 1.0", got[0].Item, got[0].Score)
	}
	if got[1].Item != "u3" {
		t.Errorf("Rank()[1] = %v, want u3", got[1].Item)
	}
	if got[0].Score < got[1].Score {
		t.Error("Rank() output not descending")
	}
}

func TestRankSkipsMismatchedVectors(t *testing.T) {
	target := []float64{1, 2, 3, 4}
	candidates := []Candidate[string]{
		{Item: "short", Vector: []float64{2, 4}},
		{Item: "missing", Vector: nil},
		{Item: "ok", Vector: []float64{4, 3, 2, 1}},
	}

	got := Rank(target, candidates, Pearson, 10)
	if len(got) != 1 || got[0].Item != "ok" {
		t.Fatalf("Rank() = %v, want only the well-formed candidate", got)
	}
}

func TestRankSkipsMetricFailures(t *testing.T) {
	countingMetric := func(target, candidate []float64) (float64, error) {
		if candidate[0] < 0 {
			return 0, errors.New("unscoreable")
		}
		return candidate[0], nil
	}

	target := []float64{1}
	candidates := []Candidate[int]{
		{Item: 1, Vector: []float64{-5}},
		{Item: 2, Vector: []float64{2}},
	}

	got := Rank(target, candidates, countingMetric, 10)
	if len(got) != 1 || got[0].Item != 2 {
		t.Fatalf("Rank() = %v, want only the scoreable candidate", got)
	}
}

func TestRankSkipsNonFiniteScores(t *testing.T) {
	badMetric := func(target, candidate []float64) (float64, error) {
		switch candidate[0] {
		case 1:
			return math.NaN(), nil
		case 2:
			return math.Inf(1), nil
		}
		return 0.5, nil
	}

	target := []float64{0}
	candidates := []Candidate[int]{
		{Item: 1, Vector: []float64{1}},
		{Item: 2, Vector: []float64{2}},
		{Item: 3, Vector: []float64{3}},
	}

	got := Rank(target, candidates, badMetric, 10)
	if len(got) != 1 || got[0].Item != 3 {
		t.Fatalf("Rank() = %v, want non-finite scores dropped", got)
	}
}

func TestRankTruncatesToLimit(t *testing.T) {
	identityMetric := func(target, candidate []float64) (float64, error) {
		return candidate[0], nil
	}

	target := []float64{0}
	candidates := make([]Candidate[int], 10)
	for i := range candidates {
		candidates[i] = Candidate[int]{Item: i, Vector: []float64{float64(i)}}
	}

	got := Rank(target, candidates, identityMetric, 3)
	if len(got) != 3 {
		t.Fatalf("Rank() returned %d results, want 3", len(got))
	}
	if got[0].Item != 9 || got[1].Item != 8 || got[2].Item != 7 {
		t.Errorf("Rank() top-3 = %v, want [9 8 7]", got)
	}
}

func TestRankFewerThanLimit(t *testing.T) {
	got := Rank([]float64{1, 2}, []Candidate[int]{
		{Item: 1, Vector: []float64{2, 4}},
	}, Pearson, 10)
	if len(got) != 1 {
		t.Fatalf("Rank() returned %d results, want 1 (no padding)", len(got))
	}
}

func TestRankStableTies(t *testing.T) {
	constantMetric := func(target, candidate []float64) (float64, error) {
		return 0.5, nil
	}

	target := []float64{0}
	candidates := []Candidate[string]{
		{Item: "first", Vector: []float64{1}},
		{Item: "second", Vector: []float64{2}},
		{Item: "third", Vector: []float64{3}},
	}

	got := Rank(target, candidates, constantMetric, 10)
	if got[0].Item != "first" || got[1].Item != "second" || got[2].Item != "third" {
		t.Errorf("Rank() tie order = %v, want original candidate order", got)
	}
}

func TestRankNonPositiveLimit(t *testing.T) {
	got := Rank([]float64{1}, []Candidate[int]{{Item: 1, Vector: []float64{1}}}, Pearson, 0)
	if got != nil {
		t.Errorf("Rank() with limit 0 = %v, want nil", got)
	}
}
