package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sociograph/sociograph/store"
)

// UpsertFriendship stores an undirected edge as two directed rows.
// Self-edges are ignored.
func (d *DB) UpsertFriendship(ctx context.Context, srcID, dstID int32) error {
	if srcID == dstID {
		return nil
	}
	if _, err := d.db.ExecContext(ctx, `
		INSERT INTO friendship (src_id, dst_id)
		VALUES (?, ?), (?, ?)
		ON CONFLICT DO NOTHING
	`, srcID, dstID, dstID, srcID); err != nil {
		return errors.Wrap(err, "failed to upsert friendship")
	}
	return nil
}

// ListMutualFriendCandidates returns non-friends two hops from the user,
// ordered by the number of shared friends descending.
func (d *DB) ListMutualFriendCandidates(ctx context.Context, userID int32, limit int) ([]*store.MutualFriendCandidate, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT u.id, u.name, COUNT(*) AS mutuals
		FROM friendship f1
		JOIN friendship f2 ON f2.src_id = f1.dst_id
		JOIN user u ON u.id = f2.dst_id
		WHERE f1.src_id = ?1
			AND f2.dst_id <> ?1
			AND NOT EXISTS (
				SELECT 1 FROM friendship f3
				WHERE f3.src_id = ?1 AND f3.dst_id = f2.dst_id
			)
		GROUP BY u.id, u.name
		ORDER BY mutuals DESC, u.id
		LIMIT ?2
	`, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list mutual friend candidates")
	}
	defer rows.Close()

	candidates := []*store.MutualFriendCandidate{}
	for rows.Next() {
		candidate := &store.MutualFriendCandidate{}
		if err := rows.Scan(&candidate.UserID, &candidate.Name, &candidate.Mutuals); err != nil {
			return nil, errors.Wrap(err, "failed to scan candidate row")
		}
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}

func (d *DB) GetFriendCounts(ctx context.Context, userID int32) (*store.FriendCounts, error) {
	counts := &store.FriendCounts{}
	err := d.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM friendship WHERE src_id = ?1),
			(SELECT COUNT(DISTINCT f2.dst_id)
				FROM friendship f1
				JOIN friendship f2 ON f2.src_id = f1.dst_id
				WHERE f1.src_id = ?1
					AND f2.dst_id <> ?1
					AND NOT EXISTS (
						SELECT 1 FROM friendship f3
						WHERE f3.src_id = ?1 AND f3.dst_id = f2.dst_id
					))
	`, userID).Scan(&counts.Direct, &counts.FriendsOfFriends)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get friend counts")
	}
	return counts, nil
}

// ShortestFriendPath walks the friendship graph breadth-first up to six hops.
// The path accumulates as a comma-separated id list since SQLite has no
// array type.
func (d *DB) ShortestFriendPath(ctx context.Context, fromID, toID int32) ([]int32, error) {
	var path string
	err := d.db.QueryRowContext(ctx, `
		WITH RECURSIVE walk(path, last, depth) AS (
			SELECT CAST(?1 AS TEXT), ?1, 0
			UNION ALL
			SELECT w.path || ',' || f.dst_id, f.dst_id, w.depth + 1
			FROM walk w
			JOIN friendship f ON f.src_id = w.last
			WHERE instr(',' || w.path || ',', ',' || f.dst_id || ',') = 0
				AND w.last <> ?2
				AND w.depth < 6
		)
		SELECT path FROM walk WHERE last = ?2 ORDER BY depth LIMIT 1
	`, fromID, toID).Scan(&path)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find shortest friend path")
	}

	parts := strings.Split(path, ",")
	ids := make([]int32, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed path segment %q", part)
		}
		ids = append(ids, int32(id))
	}
	return ids, nil
}

func (d *DB) GetGraphStats(ctx context.Context) (*store.GraphStats, error) {
	stats := &store.GraphStats{}
	err := d.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM user),
			(SELECT COUNT(*) FROM friendship),
			(SELECT COUNT(*) FROM job),
			(SELECT COUNT(*) FROM user WHERE features IS NOT NULL),
			(SELECT COUNT(*) FROM user WHERE embedding IS NOT NULL),
			(SELECT COUNT(*) FROM job WHERE embedding IS NOT NULL)
	`).Scan(
		&stats.Users,
		&stats.Friendships,
		&stats.Jobs,
		&stats.UsersWithFeatures,
		&stats.UsersWithEmbedding,
		&stats.JobsWithEmbedding,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get graph stats")
	}
	return stats, nil
}
