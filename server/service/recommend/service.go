package recommend

import (
	"context"

	"github.com/pkg/errors"

	"github.com/sociograph/sociograph/store"
)

// ErrNotFound is reported when the mutual-friend query yields no candidates.
// That state is indistinguishable from an unknown source user, so the caller
// decides how to surface it. The vector-based recommenders instead return an
// empty list, which is a valid result.
var ErrNotFound = errors.New("no friend candidates for user")

// RankedUser is a user recommendation with its score: the mutual-friend
// count for friend recommendations, the Pearson correlation for
// people-you-may-know.
type RankedUser struct {
	UserID int32
	Name   string
	Score  float64
}

// RankedJob is a job recommendation with its cosine similarity score.
type RankedJob struct {
	JobID            string
	Title            string
	Company          *string
	Location         *string
	PostingURL       *string
	NormalizedSalary *float64
	Score            float64
}

// Service composes the store's graph queries with the similarity metrics and
// the ranker. It holds no state between calls; results depend only on store
// contents.
type Service struct {
	store *store.Store
}

// NewService creates a recommendation service over the given store.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// FriendRecommendations returns friend-of-friend candidates ordered by
// mutual-friend count. The store query already computes and orders by the
// count, so no re-ranking happens here; rows are only shaped into scored
// results.
func (s *Service) FriendRecommendations(ctx context.Context, userID int32, limit int) ([]RankedUser, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	candidates, err := s.store.ListMutualFriendCandidates(ctx, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list mutual friend candidates")
	}
	if len(candidates) == 0 {
		return nil, ErrNotFound
	}

	results := make([]RankedUser, 0, len(candidates))
	for _, candidate := range candidates {
		results = append(results, RankedUser{
			UserID: candidate.UserID,
			Name:   candidate.Name,
			Score:  float64(candidate.Mutuals),
		})
	}
	return results, nil
}

// PeopleYouMayKnow ranks other users by Pearson correlation of their raw
// feature vectors against the target user's. A user without features gets an
// empty result, not an error. The candidate pool is bounded store-side,
// independently of limit.
func (s *Service) PeopleYouMayKnow(ctx context.Context, userID int32, limit int) ([]RankedUser, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	source, err := s.store.GetUserFeatures(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user features")
	}
	if source == nil || len(source.Features) == 0 {
		return []RankedUser{}, nil
	}

	records, err := s.store.ListCandidateFeatures(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list candidate features")
	}

	candidates := make([]Candidate[*store.UserFeatures], 0, len(records))
	for _, record := range records {
		candidates = append(candidates, Candidate[*store.UserFeatures]{
			Item:   record,
			Vector: record.Features,
		})
	}

	ranked := Rank(source.Features, candidates, Pearson, limit)
	results := make([]RankedUser, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, RankedUser{
			UserID: r.Item.UserID,
			Name:   r.Item.Name,
			Score:  r.Score,
		})
	}
	return results, nil
}

// JobRecommendations ranks job postings by cosine similarity between the
// user's pre-computed embedding and each job's title embedding. A user
// without an embedding gets an empty result. Jobs whose similarity is zero
// or undefined are excluded entirely: a zero cosine means no relevance, not
// low relevance.
func (s *Service) JobRecommendations(ctx context.Context, userID int32, limit int) ([]RankedJob, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	embedding, err := s.store.GetUserEmbedding(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user embedding")
	}
	if len(embedding) == 0 {
		return []RankedJob{}, nil
	}

	jobs, err := s.store.ListJobEmbeddings(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list job embeddings")
	}

	candidates := make([]Candidate[*store.Job], 0, len(jobs))
	for _, job := range jobs {
		candidates = append(candidates, Candidate[*store.Job]{
			Item:   job,
			Vector: job.Embedding,
		})
	}

	ranked := Rank(embedding, candidates, cosineNonZero, limit)
	results := make([]RankedJob, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, RankedJob{
			JobID:            r.Item.ID,
			Title:            r.Item.Title,
			Company:          r.Item.Company,
			Location:         r.Item.Location,
			PostingURL:       r.Item.PostingURL,
			NormalizedSalary: r.Item.NormalizedSalary,
			Score:            r.Score,
		})
	}
	return results, nil
}

// FriendCounts reports the direct and friends-of-friends counts for a user.
func (s *Service) FriendCounts(ctx context.Context, userID int32) (*store.FriendCounts, error) {
	counts, err := s.store.GetFriendCounts(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get friend counts")
	}
	return counts, nil
}

// cosineNonZero is the job-ranking metric: cosine similarity with
// exactly-zero similarity treated the same as unscoreable.
func cosineNonZero(target, candidate []float64) (float64, error) {
	score, err := Cosine(target, candidate)
	if err != nil {
		return 0, err
	}
	if score == 0 {
		return 0, errors.New("zero similarity")
	}
	return score, nil
}
