// Package etl loads SNAP-format graph datasets and job posting CSVs into the
// store.
package etl

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sociograph/sociograph/server/service/recommend"
	"github.com/sociograph/sociograph/store"
)

// upsertConcurrency bounds concurrent store writes during a load.
const upsertConcurrency = 8

// Loader imports dataset files into the store.
type Loader struct {
	store *store.Store
}

func NewLoader(s *store.Store) *Loader {
	return &Loader{store: s}
}

// LoadEdges imports an edge list of whitespace-separated "src dst" pairs.
// Lines starting with '#' are comments. Endpoint users are created on the
// fly; the store records both edge directions. Returns the number of edges
// loaded.
func (l *Loader) LoadEdges(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open edge list %s", path)
	}
	defer f.Close()
	return l.loadEdges(ctx, f)
}

func (l *Loader) loadEdges(ctx context.Context, r io.Reader) (int, error) {
	edges, err := parseEdges(r)
	if err != nil {
		return 0, err
	}

	// Ensure endpoint users exist before inserting edges.
	seen := map[int32]bool{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertConcurrency)
	for _, edge := range edges {
		for _, id := range edge {
			if seen[id] {
				continue
			}
			seen[id] = true
			id := id
			g.Go(func() error {
				_, err := l.store.UpsertUser(gctx, &store.User{ID: id})
				return err
			})
		}
	}
	if err := g.Wait(); err != nil {
		return 0, errors.Wrap(err, "failed to upsert edge endpoints")
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(upsertConcurrency)
	for _, edge := range edges {
		edge := edge
		g.Go(func() error {
			return l.store.UpsertFriendship(gctx, edge[0], edge[1])
		})
	}
	if err := g.Wait(); err != nil {
		return 0, errors.Wrap(err, "failed to upsert friendships")
	}

	slog.Info("edges loaded", "edges", len(edges), "users", len(seen))
	return len(edges), nil
}

func parseEdges(r io.Reader) ([][2]int32, error) {
	var edges [][2]int32
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.Errorf("malformed edge line %q", line)
		}
		src, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed edge line %q", line)
		}
		dst, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed edge line %q", line)
		}
		edges = append(edges, [2]int32{int32(src), int32(dst)})
	}
	return edges, scanner.Err()
}

// LoadFeatures imports a SNAP feature file of "id v1 v2 ..." rows. Rows are
// zero-padded to the longest row in the file so every user gets a vector of
// the same length, and each user's embedding is projected from the padded
// features at load time. Returns the number of users loaded.
func (l *Loader) LoadFeatures(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open feature file %s", path)
	}
	defer f.Close()
	return l.loadFeatures(ctx, f)
}

func (l *Loader) loadFeatures(ctx context.Context, r io.Reader) (int, error) {
	features, err := parseFeatures(r)
	if err != nil {
		return 0, err
	}
	densify(features)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertConcurrency)
	for id, vector := range features {
		id, vector := id, vector
		g.Go(func() error {
			_, err := l.store.UpsertUser(gctx, &store.User{
				ID:        id,
				Features:  vector,
				Embedding: recommend.ProjectFeatures(vector, recommend.EmbeddingDim),
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, errors.Wrap(err, "failed to upsert user features")
	}

	slog.Info("features loaded", "users", len(features))
	return len(features), nil
}

func parseFeatures(r io.Reader) (map[int32][]float64, error) {
	features := map[int32][]float64{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		id, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed feature line %q", line)
		}
		vector := make([]float64, 0, len(fields)-1)
		for _, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "malformed feature line %q", line)
			}
			vector = append(vector, v)
		}
		features[int32(id)] = vector
	}
	return features, scanner.Err()
}

// densify zero-pads every vector to the length of the longest one.
func densify(features map[int32][]float64) {
	maxLen := 0
	for _, v := range features {
		if len(v) > maxLen {
			maxLen = len(v)
		}
	}
	for id, v := range features {
		if len(v) < maxLen {
			padded := make([]float64, maxLen)
			copy(padded, v)
			features[id] = padded
		}
	}
}

// LoadTargets imports a CSV of "id,name" rows assigning display names to
// users. Returns the number of users named.
func (l *Loader) LoadTargets(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open target file %s", path)
	}
	defer f.Close()
	return l.loadTargets(ctx, f)
}

func (l *Loader) loadTargets(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read target CSV")
	}
	if len(records) == 0 {
		return 0, nil
	}

	// Skip the header row when present.
	if _, err := strconv.ParseInt(records[0][0], 10, 32); err != nil {
		records = records[1:]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertConcurrency)
	count := 0
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		id, err := strconv.ParseInt(record[0], 10, 32)
		if err != nil {
			return 0, errors.Errorf("malformed target row %v", record)
		}
		name := strings.TrimSpace(record[1])
		count++
		g.Go(func() error {
			_, err := l.store.UpsertUser(gctx, &store.User{ID: int32(id), Name: name})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, errors.Wrap(err, "failed to upsert user names")
	}

	slog.Info("targets loaded", "users", count)
	return count, nil
}

// LoadJobs imports a job posting CSV with a header row of
// job_id,title,company,location,job_posting_url,normalized_salary. Rows
// without a job_id get a generated one. Embeddings are not computed here;
// the embedding runner picks up jobs lacking one. Returns the number of
// jobs loaded.
func (l *Loader) LoadJobs(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open job CSV %s", path)
	}
	defer f.Close()
	return l.loadJobs(ctx, f)
}

func (l *Loader) loadJobs(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to read job CSV header")
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["title"]; !ok {
		return 0, errors.New("job CSV has no title column")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertConcurrency)
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errors.Wrap(err, "failed to read job CSV row")
		}

		job, err := jobFromRecord(columns, record)
		if err != nil {
			return 0, err
		}
		if job == nil {
			continue
		}
		count++
		g.Go(func() error {
			_, err := l.store.UpsertJob(gctx, job)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, errors.Wrap(err, "failed to upsert jobs")
	}

	slog.Info("jobs loaded", "jobs", count)
	return count, nil
}

func jobFromRecord(columns map[string]int, record []string) (*store.Job, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	title := field("title")
	if title == "" {
		return nil, nil
	}

	job := &store.Job{
		ID:    field("job_id"),
		Title: title,
	}
	if job.ID == "" {
		job.ID = shortuuid.New()
	}
	if v := field("company"); v != "" {
		job.Company = &v
	}
	if v := field("location"); v != "" {
		job.Location = &v
	}
	if v := field("job_posting_url"); v != "" {
		job.PostingURL = &v
	}
	if v := field("normalized_salary"); v != "" {
		salary, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Errorf("malformed salary %q for job %s", v, job.ID)
		}
		job.NormalizedSalary = &salary
	}
	return job, nil
}
