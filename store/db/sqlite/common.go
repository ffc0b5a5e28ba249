package sqlite

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// encodeVector serializes a vector to its JSON text form, mapping an empty
// slice to SQL NULL.
func encodeVector(v []float64) (any, error) {
	if len(v) == 0 {
		return nil, nil
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode vector")
	}
	return string(buf), nil
}

// decodeVector parses a nullable JSON vector column. NULL yields nil.
func decodeVector(ns sql.NullString) ([]float64, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var v []float64
	if err := json.Unmarshal([]byte(ns.String), &v); err != nil {
		return nil, errors.Wrap(err, "failed to decode vector column")
	}
	return v, nil
}
