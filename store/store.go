package store

import (
	"context"

	"github.com/sociograph/sociograph/internal/profile"
)

// Store provides database access to all raw objects.
//
// It holds no per-request state and no caches: every recommendation request
// reads current store contents, so two calls with identical store contents
// produce identical results.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// User model related methods.

func (s *Store) UpsertUser(ctx context.Context, create *User) (*User, error) {
	return s.driver.UpsertUser(ctx, create)
}

func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	return s.driver.GetUser(ctx, find)
}

func (s *Store) SearchUsers(ctx context.Context, query string, limit int) ([]*User, error) {
	return s.driver.SearchUsers(ctx, query, limit)
}

func (s *Store) UpdateUserEmbedding(ctx context.Context, userID int32, embedding []float64) error {
	return s.driver.UpdateUserEmbedding(ctx, userID, embedding)
}

// Friendship graph related methods.

func (s *Store) UpsertFriendship(ctx context.Context, srcID, dstID int32) error {
	return s.driver.UpsertFriendship(ctx, srcID, dstID)
}

func (s *Store) ListMutualFriendCandidates(ctx context.Context, userID int32, limit int) ([]*MutualFriendCandidate, error) {
	return s.driver.ListMutualFriendCandidates(ctx, userID, limit)
}

func (s *Store) GetFriendCounts(ctx context.Context, userID int32) (*FriendCounts, error) {
	return s.driver.GetFriendCounts(ctx, userID)
}

func (s *Store) ShortestFriendPath(ctx context.Context, fromID, toID int32) ([]int32, error) {
	return s.driver.ShortestFriendPath(ctx, fromID, toID)
}

// Feature vector and embedding scans.

func (s *Store) GetUserFeatures(ctx context.Context, userID int32) (*UserFeatures, error) {
	return s.driver.GetUserFeatures(ctx, userID)
}

// ListCandidateFeatures returns feature vectors of users other than
// excludeUserID, bounded by the profile's people pool limit.
func (s *Store) ListCandidateFeatures(ctx context.Context, excludeUserID int32) ([]*UserFeatures, error) {
	return s.driver.ListCandidateFeatures(ctx, excludeUserID, s.profile.PeoplePoolLimit)
}

func (s *Store) GetUserEmbedding(ctx context.Context, userID int32) ([]float64, error) {
	return s.driver.GetUserEmbedding(ctx, userID)
}

// Job model related methods.

func (s *Store) UpsertJob(ctx context.Context, create *Job) (*Job, error) {
	return s.driver.UpsertJob(ctx, create)
}

// ListJobEmbeddings returns jobs that have an embedding, bounded by the
// profile's job pool limit.
func (s *Store) ListJobEmbeddings(ctx context.Context) ([]*Job, error) {
	return s.driver.ListJobEmbeddings(ctx, s.profile.JobPoolLimit)
}

func (s *Store) FindJobsWithoutEmbedding(ctx context.Context, limit int) ([]*Job, error) {
	return s.driver.FindJobsWithoutEmbedding(ctx, limit)
}

func (s *Store) UpdateJobEmbedding(ctx context.Context, jobID string, embedding []float64) error {
	return s.driver.UpdateJobEmbedding(ctx, jobID, embedding)
}

// Stats related methods.

func (s *Store) GetGraphStats(ctx context.Context) (*GraphStats, error) {
	return s.driver.GetGraphStats(ctx)
}
