package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sociograph/sociograph/internal/profile"
	"github.com/sociograph/sociograph/store"
	storetest "github.com/sociograph/sociograph/store/test"
)

func newTestService(driver *storetest.FakeDriver) *Service {
	p := &profile.Profile{Mode: "dev", Driver: "sqlite", PeoplePoolLimit: 500, JobPoolLimit: 1000}
	return NewService(store.New(driver, p))
}

func TestFriendRecommendations(t *testing.T) {
	driver := &storetest.FakeDriver{
		ListMutualFriendCandidatesFn: func(_ context.Context, userID int32, limit int) ([]*store.MutualFriendCandidate, error) {
			return []*store.MutualFriendCandidate{
				{UserID: 2, Name: "Bob", Mutuals: 5},
				{UserID: 3, Name: "Charlie", Mutuals: 3},
			}, nil
		},
	}

	got, err := newTestService(driver).FriendRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, RankedUser{UserID: 2, Name: "Bob", Score: 5}, got[0])
	assert.Equal(t, RankedUser{UserID: 3, Name: "Charlie", Score: 3}, got[1])
}

func TestFriendRecommendationsEmpty(t *testing.T) {
	got, err := newTestService(&storetest.FakeDriver{}).FriendRecommendations(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
}

func TestFriendRecommendationsInvalidLimit(t *testing.T) {
	_, err := newTestService(&storetest.FakeDriver{}).FriendRecommendations(context.Background(), 1, 0)
	assert.Error(t, err)
}

func TestFriendCounts(t *testing.T) {
	driver := &storetest.FakeDriver{
		GetFriendCountsFn: func(context.Context, int32) (*store.FriendCounts, error) {
			return &store.FriendCounts{Direct: 10, FriendsOfFriends: 50}, nil
		},
	}

	counts, err := newTestService(driver).FriendCounts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), counts.Direct)
	assert.Equal(t, int64(50), counts.FriendsOfFriends)
}

func TestPeopleYouMayKnow(t *testing.T) {
	driver := &storetest.FakeDriver{
		GetUserFeaturesFn: func(_ context.Context, userID int32) (*store.UserFeatures, error) {
			return &store.UserFeatures{UserID: 1, Name: "Alice", Features: []float64{1, 2, 3, 4}}, nil
		},
		ListCandidateFeaturesFn: func(_ context.Context, excludeUserID int32, limit int) ([]*store.UserFeatures, error) {
			return []*store.UserFeatures{
				{UserID: 2, Name: "Bob", Features: []float64{2, 4, 6, 8}},
				{UserID: 3, Name: "Charlie", Features: []float64{4, 3, 2, 1}},
			}, nil
		},
	}

	got, err := newTestService(driver).PeopleYouMayKnow(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int32(2), got[0].UserID)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	assert.Equal(t, int32(3), got[1].UserID)
}

func TestPeopleYouMayKnowNoFeatures(t *testing.T) {
	got, err := newTestService(&storetest.FakeDriver{}).PeopleYouMayKnow(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPeopleYouMayKnowSkipsMismatchedSizes(t *testing.T) {
	driver := &storetest.FakeDriver{
		GetUserFeaturesFn: func(context.Context, int32) (*store.UserFeatures, error) {
			return &store.UserFeatures{UserID: 1, Features: []float64{1, 2, 3, 4}}, nil
		},
		ListCandidateFeaturesFn: func(context.Context, int32, int) ([]*store.UserFeatures, error) {
			return []*store.UserFeatures{
				{UserID: 2, Name: "Bob", Features: []float64{2, 4}},
				{UserID: 3, Name: "Charlie", Features: []float64{4, 3, 2, 1}},
			}, nil
		},
	}

	got, err := newTestService(driver).PeopleYouMayKnow(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(3), got[0].UserID)
}

func TestJobRecommendations(t *testing.T) {
	company := "Acme"
	driver := &storetest.FakeDriver{
		GetUserEmbeddingFn: func(context.Context, int32) ([]float64, error) {
			return []float64{1, 0, 0}, nil
		},
		ListJobEmbeddingsFn: func(context.Context, int) ([]*store.Job, error) {
			return []*store.Job{
				{ID: "job1", Title: "Engineer", Company: &company, Embedding: []float64{1, 0, 0}},
				{ID: "job2", Title: "Developer", Embedding: []float64{0, 1, 0}},
			}, nil
		},
	}

	got, err := newTestService(driver).JobRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)

	// job2 is orthogonal (cosine 0) and must be excluded, not ranked last.
	require.Len(t, got, 1)
	assert.Equal(t, "job1", got[0].JobID)
	assert.Equal(t, "Engineer", got[0].Title)
	assert.Equal(t, &company, got[0].Company)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
}

func TestJobRecommendationsNoEmbedding(t *testing.T) {
	got, err := newTestService(&storetest.FakeDriver{}).JobRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJobRecommendationsSkipsZeroNorm(t *testing.T) {
	driver := &storetest.FakeDriver{
		GetUserEmbeddingFn: func(context.Context, int32) ([]float64, error) {
			return []float64{0, 0, 0}, nil
		},
		ListJobEmbeddingsFn: func(context.Context, int) ([]*store.Job, error) {
			return []*store.Job{
				{ID: "job1", Title: "Engineer", Embedding: []float64{0, 0, 0}},
			}, nil
		},
	}

	got, err := newTestService(driver).JobRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJobRecommendationsSkipsMismatchedSizes(t *testing.T) {
	driver := &storetest.FakeDriver{
		GetUserEmbeddingFn: func(context.Context, int32) ([]float64, error) {
			return []float64{1, 0, 0}, nil
		},
		ListJobEmbeddingsFn: func(context.Context, int) ([]*store.Job, error) {
			return []*store.Job{
				{ID: "job1", Title: "Engineer", Embedding: []float64{1, 0}},
			}, nil
		},
	}

	got, err := newTestService(driver).JobRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJobRecommendationsNegativeSimilarityKept(t *testing.T) {
	driver := &storetest.FakeDriver{
		GetUserEmbeddingFn: func(context.Context, int32) ([]float64, error) {
			return []float64{1, 0}, nil
		},
		ListJobEmbeddingsFn: func(context.Context, int) ([]*store.Job, error) {
			return []*store.Job{
				{ID: "job1", Title: "Engineer", Embedding: []float64{-1, 0}},
			}, nil
		},
	}

	got, err := newTestService(driver).JobRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, -1.0, got[0].Score, 1e-9)
}
