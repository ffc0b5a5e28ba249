package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
//
// Lookup methods return (nil, nil) when nothing matches; list methods return
// an empty slice. "Nothing found" is a valid state, never an error.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// User model related methods.
	UpsertUser(ctx context.Context, create *User) (*User, error)
	GetUser(ctx context.Context, find *FindUser) (*User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]*User, error)
	UpdateUserEmbedding(ctx context.Context, userID int32, embedding []float64) error

	// Friendship graph related methods. Edges are undirected and stored in
	// both directions.
	UpsertFriendship(ctx context.Context, srcID, dstID int32) error
	ListMutualFriendCandidates(ctx context.Context, userID int32, limit int) ([]*MutualFriendCandidate, error)
	GetFriendCounts(ctx context.Context, userID int32) (*FriendCounts, error)
	ShortestFriendPath(ctx context.Context, fromID, toID int32) ([]int32, error)

	// Feature vector and embedding scans.
	GetUserFeatures(ctx context.Context, userID int32) (*UserFeatures, error)
	ListCandidateFeatures(ctx context.Context, excludeUserID int32, limit int) ([]*UserFeatures, error)
	GetUserEmbedding(ctx context.Context, userID int32) ([]float64, error)

	// Job model related methods.
	UpsertJob(ctx context.Context, create *Job) (*Job, error)
	ListJobEmbeddings(ctx context.Context, limit int) ([]*Job, error)
	FindJobsWithoutEmbedding(ctx context.Context, limit int) ([]*Job, error)
	UpdateJobEmbedding(ctx context.Context, jobID string, embedding []float64) error

	// Stats related methods.
	GetGraphStats(ctx context.Context) (*GraphStats, error)
}
