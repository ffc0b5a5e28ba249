package ai

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/sociograph/sociograph/store"
)

// EmbeddingProvider generates an embedding vector for a piece of text.
type EmbeddingProvider interface {
	Embedding(ctx context.Context, text string) ([]float64, error)
}

// JobEmbedder embeds job postings using an embedding provider.
type JobEmbedder struct {
	provider EmbeddingProvider
}

func NewJobEmbedder(provider EmbeddingProvider) *JobEmbedder {
	return &JobEmbedder{provider: provider}
}

// EmbedJob builds the job's text representation and returns its embedding.
func (e *JobEmbedder) EmbedJob(ctx context.Context, job *store.Job) ([]float64, error) {
	text := buildJobText(job)
	if text == "" {
		return nil, errors.Errorf("job %s has no text to embed", job.ID)
	}

	embedding, err := e.provider.Embedding(ctx, text)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to embed job %s", job.ID)
	}
	if len(embedding) == 0 {
		return nil, errors.Errorf("provider returned empty embedding for job %s", job.ID)
	}
	return embedding, nil
}

// buildJobText joins the job's descriptive fields into a single string.
func buildJobText(job *store.Job) string {
	parts := make([]string, 0, 3)
	if job.Title != "" {
		parts = append(parts, job.Title)
	}
	if job.Company != nil && *job.Company != "" {
		parts = append(parts, *job.Company)
	}
	if job.Location != nil && *job.Location != "" {
		parts = append(parts, *job.Location)
	}
	return strings.Join(parts, " - ")
}
