package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/sociograph/sociograph/store"
)

// UpsertJob inserts or replaces a job posting. The embedding column is left
// untouched on conflict so the embedding runner's work survives re-ingestion.
func (d *DB) UpsertJob(ctx context.Context, create *store.Job) (*store.Job, error) {
	stmt := `
		INSERT INTO job (id, title, company, location, posting_url, normalized_salary, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			posting_url = EXCLUDED.posting_url,
			normalized_salary = EXCLUDED.normalized_salary
	`
	if _, err := d.db.ExecContext(ctx, stmt,
		create.ID,
		create.Title,
		create.Company,
		create.Location,
		create.PostingURL,
		create.NormalizedSalary,
		vectorValue(create.Embedding),
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert job")
	}
	return create, nil
}

func (d *DB) ListJobEmbeddings(ctx context.Context, limit int) ([]*store.Job, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, title, company, location, posting_url, normalized_salary, embedding::text
		FROM job
		WHERE embedding IS NOT NULL
		ORDER BY id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list job embeddings")
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (d *DB) FindJobsWithoutEmbedding(ctx context.Context, limit int) ([]*store.Job, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, title, company, location, posting_url, normalized_salary, embedding::text
		FROM job
		WHERE embedding IS NULL
		ORDER BY id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find jobs without embedding")
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (d *DB) UpdateJobEmbedding(ctx context.Context, jobID string, embedding []float64) error {
	if _, err := d.db.ExecContext(ctx, `
		UPDATE job SET embedding = $1 WHERE id = $2
	`, vectorValue(embedding), jobID); err != nil {
		return errors.Wrap(err, "failed to update job embedding")
	}
	return nil
}

func scanJobs(rows *sql.Rows) ([]*store.Job, error) {
	jobs := []*store.Job{}
	for rows.Next() {
		job := &store.Job{}
		var embedding sql.NullString
		err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Company,
			&job.Location,
			&job.PostingURL,
			&job.NormalizedSalary,
			&embedding,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan job row")
		}
		if job.Embedding, err = scanVector(embedding); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
