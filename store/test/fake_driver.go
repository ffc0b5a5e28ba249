// Package test provides store fakes for service and handler tests.
package test

import (
	"context"
	"database/sql"
	"sync"

	"github.com/sociograph/sociograph/store"
)

// FakeDriver is a store.Driver whose behavior is overridden per test by
// assigning function fields. Unset methods report "nothing found".
type FakeDriver struct {
	GetUserFn                    func(ctx context.Context, find *store.FindUser) (*store.User, error)
	SearchUsersFn                func(ctx context.Context, query string, limit int) ([]*store.User, error)
	ListMutualFriendCandidatesFn func(ctx context.Context, userID int32, limit int) ([]*store.MutualFriendCandidate, error)
	GetFriendCountsFn            func(ctx context.Context, userID int32) (*store.FriendCounts, error)
	ShortestFriendPathFn         func(ctx context.Context, fromID, toID int32) ([]int32, error)
	GetUserFeaturesFn            func(ctx context.Context, userID int32) (*store.UserFeatures, error)
	ListCandidateFeaturesFn      func(ctx context.Context, excludeUserID int32, limit int) ([]*store.UserFeatures, error)
	GetUserEmbeddingFn           func(ctx context.Context, userID int32) ([]float64, error)
	ListJobEmbeddingsFn          func(ctx context.Context, limit int) ([]*store.Job, error)
	FindJobsWithoutEmbeddingFn   func(ctx context.Context, limit int) ([]*store.Job, error)
	UpdateJobEmbeddingFn         func(ctx context.Context, jobID string, embedding []float64) error
	GetGraphStatsFn              func(ctx context.Context) (*store.GraphStats, error)

	// UpsertedUsers, UpsertedJobs, and UpsertedEdges record writes. The
	// mutex guards them because loaders write concurrently.
	mu            sync.Mutex
	UpsertedUsers []*store.User
	UpsertedJobs  []*store.Job
	UpsertedEdges [][2]int32
}

var _ store.Driver = (*FakeDriver)(nil)

func (d *FakeDriver) GetDB() *sql.DB { return nil }
func (d *FakeDriver) Close() error   { return nil }

func (d *FakeDriver) IsInitialized(context.Context) (bool, error) { return true, nil }

func (d *FakeDriver) UpsertUser(_ context.Context, create *store.User) (*store.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.UpsertedUsers = append(d.UpsertedUsers, create)
	return create, nil
}

func (d *FakeDriver) GetUser(ctx context.Context, find *store.FindUser) (*store.User, error) {
	if d.GetUserFn != nil {
		return d.GetUserFn(ctx, find)
	}
	return nil, nil
}

func (d *FakeDriver) SearchUsers(ctx context.Context, query string, limit int) ([]*store.User, error) {
	if d.SearchUsersFn != nil {
		return d.SearchUsersFn(ctx, query, limit)
	}
	return []*store.User{}, nil
}

func (d *FakeDriver) UpdateUserEmbedding(context.Context, int32, []float64) error { return nil }

func (d *FakeDriver) UpsertFriendship(_ context.Context, srcID, dstID int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.UpsertedEdges = append(d.UpsertedEdges, [2]int32{srcID, dstID})
	return nil
}

func (d *FakeDriver) ListMutualFriendCandidates(ctx context.Context, userID int32, limit int) ([]*store.MutualFriendCandidate, error) {
	if d.ListMutualFriendCandidatesFn != nil {
		return d.ListMutualFriendCandidatesFn(ctx, userID, limit)
	}
	return []*store.MutualFriendCandidate{}, nil
}

func (d *FakeDriver) GetFriendCounts(ctx context.Context, userID int32) (*store.FriendCounts, error) {
	if d.GetFriendCountsFn != nil {
		return d.GetFriendCountsFn(ctx, userID)
	}
	return &store.FriendCounts{}, nil
}

func (d *FakeDriver) ShortestFriendPath(ctx context.Context, fromID, toID int32) ([]int32, error) {
	if d.ShortestFriendPathFn != nil {
		return d.ShortestFriendPathFn(ctx, fromID, toID)
	}
	return nil, nil
}

func (d *FakeDriver) GetUserFeatures(ctx context.Context, userID int32) (*store.UserFeatures, error) {
	if d.GetUserFeaturesFn != nil {
		return d.GetUserFeaturesFn(ctx, userID)
	}
	return nil, nil
}

func (d *FakeDriver) ListCandidateFeatures(ctx context.Context, excludeUserID int32, limit int) ([]*store.UserFeatures, error) {
	if d.ListCandidateFeaturesFn != nil {
		return d.ListCandidateFeaturesFn(ctx, excludeUserID, limit)
	}
	return []*store.UserFeatures{}, nil
}

func (d *FakeDriver) GetUserEmbedding(ctx context.Context, userID int32) ([]float64, error) {
	if d.GetUserEmbeddingFn != nil {
		return d.GetUserEmbeddingFn(ctx, userID)
	}
	return nil, nil
}

func (d *FakeDriver) UpsertJob(_ context.Context, create *store.Job) (*store.Job, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.UpsertedJobs = append(d.UpsertedJobs, create)
	return create, nil
}

func (d *FakeDriver) ListJobEmbeddings(ctx context.Context, limit int) ([]*store.Job, error) {
	if d.ListJobEmbeddingsFn != nil {
		return d.ListJobEmbeddingsFn(ctx, limit)
	}
	return []*store.Job{}, nil
}

func (d *FakeDriver) FindJobsWithoutEmbedding(ctx context.Context, limit int) ([]*store.Job, error) {
	if d.FindJobsWithoutEmbeddingFn != nil {
		return d.FindJobsWithoutEmbeddingFn(ctx, limit)
	}
	return []*store.Job{}, nil
}

func (d *FakeDriver) UpdateJobEmbedding(ctx context.Context, jobID string, embedding []float64) error {
	if d.UpdateJobEmbeddingFn != nil {
		return d.UpdateJobEmbeddingFn(ctx, jobID, embedding)
	}
	return nil
}

func (d *FakeDriver) GetGraphStats(ctx context.Context) (*store.GraphStats, error) {
	if d.GetGraphStatsFn != nil {
		return d.GetGraphStatsFn(ctx)
	}
	return &store.GraphStats{}, nil
}
