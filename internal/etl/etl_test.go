package etl

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sociograph/sociograph/internal/profile"
	"github.com/sociograph/sociograph/server/service/recommend"
	"github.com/sociograph/sociograph/store"
	storetest "github.com/sociograph/sociograph/store/test"
)

func newLoader(driver *storetest.FakeDriver) *Loader {
	return NewLoader(store.New(driver, &profile.Profile{}))
}

func TestParseEdges(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [][2]int32
		wantErr bool
	}{
		{
			name:  "plain pairs",
			input: "1 2\n2 3\n",
			want:  [][2]int32{{1, 2}, {2, 3}},
		},
		{
			name:  "comments and blank lines skipped",
			input: "# SNAP edge list\n\n1 2\n# trailing\n",
			want:  [][2]int32{{1, 2}},
		},
		{
			name:  "tab separated",
			input: "10\t20\n",
			want:  [][2]int32{{10, 20}},
		},
		{
			name:    "wrong field count",
			input:   "1 2 3\n",
			wantErr: true,
		},
		{
			name:    "non-numeric id",
			input:   "a b\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEdges(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadEdges(t *testing.T) {
	driver := &storetest.FakeDriver{}
	loader := newLoader(driver)

	count, err := loader.loadEdges(context.Background(), strings.NewReader("1 2\n2 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Every endpoint becomes a user exactly once.
	ids := make([]int32, 0, len(driver.UpsertedUsers))
	for _, u := range driver.UpsertedUsers {
		ids = append(ids, u.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	assert.Equal(t, []int32{1, 2, 3}, ids)
	assert.Len(t, driver.UpsertedEdges, 2)
}

func TestDensify(t *testing.T) {
	features := map[int32][]float64{
		1: {1, 2, 3},
		2: {4, 5},
		3: {6, 7, 8, 9},
	}
	densify(features)

	assert.Equal(t, []float64{1, 2, 3, 0}, features[1])
	assert.Equal(t, []float64{4, 5, 0, 0}, features[2])
	assert.Equal(t, []float64{6, 7, 8, 9}, features[3])
}

func TestLoadFeaturesProjectsEmbedding(t *testing.T) {
	driver := &storetest.FakeDriver{}
	loader := newLoader(driver)

	count, err := loader.loadFeatures(context.Background(), strings.NewReader("1 3 4\n2 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, driver.UpsertedUsers, 2)

	byID := map[int32]*store.User{}
	for _, u := range driver.UpsertedUsers {
		byID[u.ID] = u
	}

	// Rows are padded to the batch maximum before storage.
	assert.Equal(t, []float64{3, 4}, byID[1].Features)
	assert.Equal(t, []float64{1, 0}, byID[2].Features)

	// The stored embedding is the unit-normalized projection.
	require.Len(t, byID[1].Embedding, recommend.EmbeddingDim)
	assert.InDelta(t, 0.6, byID[1].Embedding[0], 1e-9)
	assert.InDelta(t, 0.8, byID[1].Embedding[1], 1e-9)
}

func TestLoadTargets(t *testing.T) {
	driver := &storetest.FakeDriver{}
	loader := newLoader(driver)

	count, err := loader.loadTargets(context.Background(), strings.NewReader("id,name\n1,Alice\n2,Bob\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	names := map[int32]string{}
	for _, u := range driver.UpsertedUsers {
		names[u.ID] = u.Name
	}
	assert.Equal(t, map[int32]string{1: "Alice", 2: "Bob"}, names)
}

func TestLoadTargetsWithoutHeader(t *testing.T) {
	driver := &storetest.FakeDriver{}
	loader := newLoader(driver)

	count, err := loader.loadTargets(context.Background(), strings.NewReader("1,Alice\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoadJobs(t *testing.T) {
	driver := &storetest.FakeDriver{}
	loader := newLoader(driver)

	input := "job_id,title,company,location,job_posting_url,normalized_salary\n" +
		"j1,Engineer,Google,Paris,https://example.com/j1,100000\n" +
		",Designer,,,,\n"
	count, err := loader.loadJobs(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, driver.UpsertedJobs, 2)

	byTitle := map[string]*store.Job{}
	for _, j := range driver.UpsertedJobs {
		byTitle[j.Title] = j
	}

	engineer := byTitle["Engineer"]
	require.NotNil(t, engineer)
	assert.Equal(t, "j1", engineer.ID)
	assert.Equal(t, "Google", *engineer.Company)
	assert.Equal(t, "Paris", *engineer.Location)
	assert.Equal(t, 100000.0, *engineer.NormalizedSalary)

	// A missing job_id gets a generated one; absent optionals stay nil.
	designer := byTitle["Designer"]
	require.NotNil(t, designer)
	assert.NotEmpty(t, designer.ID)
	assert.Nil(t, designer.Company)
	assert.Nil(t, designer.NormalizedSalary)
}

func TestLoadJobsSkipsUntitledRows(t *testing.T) {
	driver := &storetest.FakeDriver{}
	loader := newLoader(driver)

	input := "job_id,title\nj1,\nj2,Analyst\n"
	count, err := loader.loadJobs(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, driver.UpsertedJobs, 1)
	assert.Equal(t, "Analyst", driver.UpsertedJobs[0].Title)
}

func TestLoadJobsRejectsMissingTitleColumn(t *testing.T) {
	driver := &storetest.FakeDriver{}
	loader := newLoader(driver)

	_, err := loader.loadJobs(context.Background(), strings.NewReader("job_id,name\nj1,x\n"))
	require.Error(t, err)
}
