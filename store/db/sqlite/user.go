package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/sociograph/sociograph/store"
)

// UpsertUser inserts or updates a user node. Absent fields (empty name, nil
// vectors) do not overwrite values set by an earlier load pass.
func (d *DB) UpsertUser(ctx context.Context, create *store.User) (*store.User, error) {
	features, err := encodeVector(create.Features)
	if err != nil {
		return nil, err
	}
	embedding, err := encodeVector(create.Embedding)
	if err != nil {
		return nil, err
	}

	stmt := `
		INSERT INTO user (id, name, features, embedding)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id)
		DO UPDATE SET
			name = CASE WHEN excluded.name <> '' THEN excluded.name ELSE user.name END,
			features = COALESCE(excluded.features, user.features),
			embedding = COALESCE(excluded.embedding, user.embedding)
	`
	if _, err := d.db.ExecContext(ctx, stmt, create.ID, create.Name, features, embedding); err != nil {
		return nil, errors.Wrap(err, "failed to upsert user")
	}
	return create, nil
}

func (d *DB) GetUser(ctx context.Context, find *store.FindUser) (*store.User, error) {
	if find.ID == nil {
		return nil, errors.New("user id is required")
	}

	user := &store.User{}
	var features, embedding sql.NullString
	err := d.db.QueryRowContext(ctx, `
		SELECT id, name, features, embedding FROM user WHERE id = ?
	`, *find.ID).Scan(&user.ID, &user.Name, &features, &embedding)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	if user.Features, err = decodeVector(features); err != nil {
		return nil, err
	}
	if user.Embedding, err = decodeVector(embedding); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchUsers finds users whose name contains the query, case-insensitively.
// Feature and embedding columns are not fetched.
func (d *DB) SearchUsers(ctx context.Context, query string, limit int) ([]*store.User, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name
		FROM user
		WHERE LOWER(name) LIKE '%' || LOWER(?) || '%'
		ORDER BY id
		LIMIT ?
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
	encoded, err := encodeVector(embedding)
	if err != nil {
		return err
	}
	if _, err := d.db.ExecContext(ctx, `
		UPDATE user SET embedding = ? WHERE id = ?
	`, encoded, userID); err != nil {
		return errors.Wrap(err, "failed to update user embedding")
	}
	return nil
}

func (d *DB) GetUserFeatures(ctx context.Context, userID int32) (*store.UserFeatures, error) {
	record := &store.UserFeatures{}
	var features sql.NullString
	err := d.db.QueryRowContext(ctx, `
		SELECT id, name, features
		FROM user
		WHERE id = ? AND features IS NOT NULL
	`, userID).Scan(&record.UserID, &record.Name, &features)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user features")
	}
	if record.Features, err = decodeVector(features); err != nil {
		return nil, err
	}
	return record, nil
}

func (d *DB) ListCandidateFeatures(ctx context.Context, excludeUserID int32, limit int) ([]*store.UserFeatures, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, features
		FROM user
		WHERE id <> ? AND features IS NOT NULL
		ORDER BY id
		LIMIT ?
	`, excludeUserID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list candidate features")
	}
	defer rows.Close()

	records := []*store.UserFeatures{}
	for rows.Next() {
		record := &store.UserFeatures{}
		var features sql.NullString
		if err := rows.Scan(&record.UserID, &record.Name, &features); err != nil {
			return nil, errors.Wrap(err, "failed to scan feature row")
		}
		if record.Features, err = decodeVector(features); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (d *DB) GetUserEmbedding(ctx context.Context, userID int32) ([]float64, error) {
	var embedding sql.NullString
	err := d.db.QueryRowContext(ctx, `
		SELECT embedding FROM user WHERE id = ?
	`, userID).Scan(&embedding)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user embedding")
	}
	return decodeVector(embedding)
}
