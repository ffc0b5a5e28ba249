package store

// MutualFriendCandidate is one row of the mutual-friend pattern query:
// a non-friend two hops away, with the number of shared friends. The store
// returns rows already ordered by Mutuals descending.
type MutualFriendCandidate struct {
	UserID  int32
	Name    string
	Mutuals int64
}

// FriendCounts aggregates the two friendship counts reported alongside
// friend recommendations.
type FriendCounts struct {
	Direct           int64
	FriendsOfFriends int64
}

// GraphStats is a snapshot of node and edge counts for the debug endpoint.
type GraphStats struct {
	Users              int64
	Friendships        int64
	Jobs               int64
	UsersWithFeatures  int64
	UsersWithEmbedding int64
	JobsWithEmbedding  int64
}
