package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/sociograph/sociograph/store"
)

// UpsertUser inserts or updates a user node. Absent fields (empty name, nil
// vectors) do not overwrite values set by an earlier load pass.
func (d *DB) UpsertUser(ctx context.Context, create *store.User) (*store.User, error) {
	stmt := `
		INSERT INTO "user" (id, name, features, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), "user".name),
			features = COALESCE(EXCLUDED.features, "user".features),
			embedding = COALESCE(EXCLUDED.embedding, "user".embedding)
	`
	if _, err := d.db.ExecContext(ctx, stmt,
		create.ID,
		create.Name,
		pq.Array(create.Features),
		vectorValue(create.Embedding),
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert user")
	}
	return create, nil
}

func (d *DB) GetUser(ctx context.Context, find *store.FindUser) (*store.User, error) {
	if find.ID == nil {
		return nil, errors.New("user id is required")
	}

	user := &store.User{}
	var features pq.Float64Array
	var embedding sql.NullString
	err := d.db.QueryRowContext(ctx, `
		SELECT id, name, features, embedding::text
		FROM "user"
		WHERE id = $1
	`, *find.ID).Scan(&user.ID, &user.Name, &features, &embedding)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	user.Features = []float64(features)
	if user.Embedding, err = scanVector(embedding); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchUsers finds users whose name contains the query, case-insensitively.
// Feature and embedding columns are not fetched.
func (d *DB) SearchUsers(ctx context.Context, query string, limit int) ([]*store.User, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name
		FROM "user"
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search users")
	}
	defer rows.Close()

	users := []*store.User{}
	for rows.Next() {
		user := &store.User{}
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, errors.Wrap(err, "failed to scan user row")
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (d *DB) UpdateUserEmbedding(ctx context.Context, userID int32, embedding []float64) error {
	if _, err := d.db.ExecContext(ctx, `
		UPDATE "user" SET embedding = $1 WHERE id = $2
	`, vectorValue(embedding), userID); err != nil {
		return errors.Wrap(err, "failed to update user embedding")
	}
	return nil
}

func (d *DB) GetUserFeatures(ctx context.Context, userID int32) (*store.UserFeatures, error) {
	record := &store.UserFeatures{}
	var features pq.Float64Array
	err := d.db.QueryRowContext(ctx, `
		SELECT id, name, features
		FROM "user"
		WHERE id = $1 AND features IS NOT NULL
	`, userID).Scan(&record.UserID, &record.Name, &features)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user features")
	}
	record.Features = []float64(features)
	return record, nil
}

func (d *DB) ListCandidateFeatures(ctx context.Context, excludeUserID int32, limit int) ([]*store.UserFeatures, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, features
		FROM "user"
		WHERE id <> $1 AND features IS NOT NULL
		ORDER BY id
		LIMIT $2
	`, excludeUserID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list candidate features")
	}
	defer rows.Close()

	records := []*store.UserFeatures{}
	for rows.Next() {
		record := &store.UserFeatures{}
		var features pq.Float64Array
		if err := rows.Scan(&record.UserID, &record.Name, &features); err != nil {
			return nil, errors.Wrap(err, "failed to scan feature row")
		}
		record.Features = []float64(features)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (d *DB) GetUserEmbedding(ctx context.Context, userID int32) ([]float64, error) {
	var embedding sql.NullString
	err := d.db.QueryRowContext(ctx, `
		SELECT embedding::text FROM "user" WHERE id = $1
	`, userID).Scan(&embedding)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user embedding")
	}
	return scanVector(embedding)
}
