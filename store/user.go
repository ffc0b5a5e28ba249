package store

// User is a node in the friendship graph.
type User struct {
	ID   int32
	Name string
	// Features is the raw graph-derived feature vector. Length varies per
	// user and may be nil when the source dataset carried no features.
	Features []float64
	// Embedding is the pre-computed dense vector in the shared job-embedding
	// space, or nil when it has not been materialized yet.
	Embedding []float64
}

// FindUser is the filter for user lookups.
type FindUser struct {
	ID *int32
}

// UserFeatures is the record returned by feature-vector scans. It carries
// only what the people-you-may-know ranking needs.
type UserFeatures struct {
	UserID   int32
	Name     string
	Features []float64
}
