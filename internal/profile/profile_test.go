package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	clearEnvVars(t)

	p := &Profile{}
	p.FromEnv()

	if p.PeoplePoolLimit != 500 {
		t.Errorf("PeoplePoolLimit: expected 500, got %d", p.PeoplePoolLimit)
	}
	if p.JobPoolLimit != 1000 {
		t.Errorf("JobPoolLimit: expected 1000, got %d", p.JobPoolLimit)
	}
	if p.EmbedderEnabled {
		t.Error("EmbedderEnabled: expected false by default")
	}
	if p.EmbedderBaseURL != "https://api.openai.com/v1" {
		t.Errorf("EmbedderBaseURL: unexpected default %q", p.EmbedderBaseURL)
	}
	if p.EmbedderModel != "text-embedding-3-small" {
		t.Errorf("EmbedderModel: unexpected default %q", p.EmbedderModel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("SOCIOGRAPH_PEOPLE_POOL_LIMIT", "50")
	t.Setenv("SOCIOGRAPH_JOB_POOL_LIMIT", "25")
	t.Setenv("SOCIOGRAPH_EMBEDDER_ENABLED", "true")
	t.Setenv("SOCIOGRAPH_EMBEDDER_API_KEY", "test-key")
	t.Setenv("SOCIOGRAPH_EMBEDDER_MODEL", "bge-m3")

	p := &Profile{}
	p.FromEnv()

	if p.PeoplePoolLimit != 50 {
		t.Errorf("PeoplePoolLimit: expected 50, got %d", p.PeoplePoolLimit)
	}
	if p.JobPoolLimit != 25 {
		t.Errorf("JobPoolLimit: expected 25, got %d", p.JobPoolLimit)
	}
	if !p.IsEmbedderEnabled() {
		t.Error("IsEmbedderEnabled: expected true")
	}
	if p.EmbedderModel != "bge-m3" {
		t.Errorf("EmbedderModel: expected bge-m3, got %q", p.EmbedderModel)
	}
}

func TestFromEnvInvalidPoolLimit(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("SOCIOGRAPH_PEOPLE_POOL_LIMIT", "not-a-number")

	p := &Profile{}
	p.FromEnv()

	if p.PeoplePoolLimit != 500 {
		t.Errorf("PeoplePoolLimit: expected default 500 on invalid input, got %d", p.PeoplePoolLimit)
	}
}

func TestValidateDefaults(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{Mode: "weird", Data: dir}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: unexpected error: %v", err)
	}
	if p.Mode != "dev" {
		t.Errorf("Mode: expected fallback to dev, got %q", p.Mode)
	}
	if p.Driver != "sqlite" {
		t.Errorf("Driver: expected sqlite default, got %q", p.Driver)
	}
	wantDSN := filepath.Join(dir, "sociograph_dev.db")
	if p.DSN != wantDSN {
		t.Errorf("DSN: expected %q, got %q", wantDSN, p.DSN)
	}
}

func TestValidatePostgresRequiresDSN(t *testing.T) {
	p := &Profile{Mode: "prod", Data: t.TempDir(), Driver: "postgres"}
	if err := p.Validate(); err == nil {
		t.Error("Validate: expected error for postgres without dsn")
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SOCIOGRAPH_PEOPLE_POOL_LIMIT",
		"SOCIOGRAPH_JOB_POOL_LIMIT",
		"SOCIOGRAPH_EMBEDDER_ENABLED",
		"SOCIOGRAPH_EMBEDDER_BASE_URL",
		"SOCIOGRAPH_EMBEDDER_API_KEY",
		"SOCIOGRAPH_EMBEDDER_MODEL",
	} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}
