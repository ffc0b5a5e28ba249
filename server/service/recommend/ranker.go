package recommend

import (
	"math"
	"sort"
)

// Metric scores two equal-length vectors. A returned error means the pair
// cannot be meaningfully scored and the candidate should be excluded.
type Metric func(target, candidate []float64) (float64, error)

// Candidate pairs an item with the vector it is scored on. Candidates are
// opportunistic: partial data from the store is expected, so an absent or
// mismatched vector drops the candidate instead of failing the request.
type Candidate[T any] struct {
	Item   T
	Vector []float64
}

// Scored is a candidate that survived scoring. Score is always finite.
type Scored[T any] struct {
	Item  T
	Score float64
}

// Rank scores every candidate against target with metric, drops candidates
// whose vector is missing, of mismatched length, unscoreable, or yields a
// non-finite value, then returns at most limit survivors ordered by score
// descending. Ties keep their original candidate order.
func Rank[T any](target []float64, candidates []Candidate[T], metric Metric, limit int) []Scored[T] {
	if limit <= 0 {
		return nil
	}

	scored := make([]Scored[T], 0, len(candidates))
	for _, candidate := range candidates {
		if len(candidate.Vector) == 0 || len(candidate.Vector) != len(target) {
			continue
		}
		score, err := metric(target, candidate.Vector)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		scored = append(scored, Scored[T]{Item: candidate.Item, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
