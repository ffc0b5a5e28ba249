package db

import (
	"github.com/pkg/errors"

	"github.com/sociograph/sociograph/internal/profile"
	"github.com/sociograph/sociograph/store"
	"github.com/sociograph/sociograph/store/db/postgres"
	"github.com/sociograph/sociograph/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
//
// PostgreSQL is the production backend: embeddings live in pgvector columns
// and all graph queries run server-side. SQLite is supported for development
// and tests; vectors are stored as JSON since scoring happens in-process
// anyway (candidate sets are scanned exhaustively, never index-searched).
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'postgres' and 'sqlite' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
