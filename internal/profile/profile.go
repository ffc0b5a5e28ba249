package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where sociograph stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// PeoplePoolLimit bounds how many candidate feature vectors the store
	// returns for a people-you-may-know scan. Independent of the per-request
	// limit applied after ranking.
	PeoplePoolLimit int
	// JobPoolLimit bounds how many job embeddings the store returns for a
	// job recommendation scan.
	JobPoolLimit int

	// Embedder configuration (job title embeddings).
	EmbedderEnabled bool   // SOCIOGRAPH_EMBEDDER_ENABLED
	EmbedderBaseURL string // SOCIOGRAPH_EMBEDDER_BASE_URL
	EmbedderAPIKey  string // SOCIOGRAPH_EMBEDDER_API_KEY
	EmbedderModel   string // SOCIOGRAPH_EMBEDDER_MODEL
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsEmbedderEnabled returns true if the embedding provider is usable.
func (p *Profile) IsEmbedderEnabled() bool {
	return p.EmbedderEnabled && (p.EmbedderAPIKey != "" || p.EmbedderBaseURL != "")
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// FromEnv loads configuration from SOCIOGRAPH_* environment variables.
func (p *Profile) FromEnv() {
	p.PeoplePoolLimit = getIntEnvOrDefault("SOCIOGRAPH_PEOPLE_POOL_LIMIT", 500)
	p.JobPoolLimit = getIntEnvOrDefault("SOCIOGRAPH_JOB_POOL_LIMIT", 1000)

	p.EmbedderEnabled = os.Getenv("SOCIOGRAPH_EMBEDDER_ENABLED") == "true"
	p.EmbedderBaseURL = getEnvOrDefault("SOCIOGRAPH_EMBEDDER_BASE_URL", "https://api.openai.com/v1")
	p.EmbedderAPIKey = os.Getenv("SOCIOGRAPH_EMBEDDER_API_KEY")
	p.EmbedderModel = getEnvOrDefault("SOCIOGRAPH_EMBEDDER_MODEL", "text-embedding-3-small")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Data == "" {
		p.Data = "."
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("sociograph_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for postgres driver")
	}

	if p.PeoplePoolLimit <= 0 {
		p.PeoplePoolLimit = 500
	}
	if p.JobPoolLimit <= 0 {
		p.JobPoolLimit = 1000
	}

	return nil
}
