package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sociograph/sociograph/server/ai"
	"github.com/sociograph/sociograph/store"
)

// Runner periodically embeds jobs that were loaded without an embedding.
type Runner struct {
	store     *store.Store
	embedder  *ai.JobEmbedder
	interval  time.Duration
	batchSize int
}

// NewRunner creates a job embedding runner. Small batches keep memory peaks
// down and avoid hammering the embedding endpoint.
func NewRunner(store *store.Store, embedder *ai.JobEmbedder) *Runner {
	return &Runner{
		store:     store,
		embedder:  embedder,
		interval:  2 * time.Minute,
		batchSize: 8,
	}
}

// Run starts the background task.
func (r *Runner) Run(ctx context.Context) {
	// Process once on startup
	r.processPendingJobs(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.processPendingJobs(ctx)
		case <-ctx.Done():
			slog.Info("embedding runner stopped")
			return
		}
	}
}

// RunOnce processes pending jobs once (for manual trigger).
func (r *Runner) RunOnce(ctx context.Context) {
	r.processPendingJobs(ctx)
}

func (r *Runner) processPendingJobs(ctx context.Context) {
	// Fetch more than one batch per tick, but process in small batches.
	jobs, err := r.store.FindJobsWithoutEmbedding(ctx, r.batchSize*20)
	if err != nil {
		slog.Error("failed to find jobs without embedding", "error", err)
		return
	}
	if len(jobs) == 0 {
		return
	}

	slog.Info("processing jobs for embedding", "count", len(jobs))

	for i := 0; i < len(jobs); i += r.batchSize {
		select {
		case <-ctx.Done():
			slog.Info("embedding processing cancelled", "processed", i, "total", len(jobs))
			return
		default:
		}

		end := i + r.batchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		batch := jobs[i:end]

		if err := r.processBatch(ctx, batch); err != nil {
			slog.Error("failed to process batch", "error", err)
			continue
		}
		slog.Info("batch processed", "count", len(batch), "progress", fmt.Sprintf("%d/%d", end, len(jobs)))
	}
}

func (r *Runner) processBatch(ctx context.Context, jobs []*store.Job) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	for _, job := range jobs {
		vector, err := r.embedder.EmbedJob(ctx, job)
		if err != nil {
			slog.Error("failed to embed job", "jobID", job.ID, "error", err)
			continue
		}
		if err := r.store.UpdateJobEmbedding(ctx, job.ID, vector); err != nil {
			slog.Error("failed to store job embedding", "jobID", job.ID, "error", err)
		}
	}
	return nil
}
