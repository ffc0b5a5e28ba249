package postgres

import (
	"database/sql"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"
)

// vectorValue converts a float64 slice to a pgvector value, mapping an empty
// slice to SQL NULL.
func vectorValue(v []float64) any {
	if len(v) == 0 {
		return nil
	}
	f := make([]float32, len(v))
	for i, x := range v {
		f[i] = float32(x)
	}
	return pgvector.NewVector(f)
}

// scanVector parses the text form of a nullable vector column
// (selected as embedding::text). NULL yields nil.
func scanVector(ns sql.NullString) ([]float64, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var vec pgvector.Vector
	if err := vec.Scan(ns.String); err != nil {
		return nil, errors.Wrap(err, "failed to parse vector column")
	}
	f := vec.Slice()
	out := make([]float64, len(f))
	for i, x := range f {
		out[i] = float64(x)
	}
	return out, nil
}
