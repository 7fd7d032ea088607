package store

import (
	"context"
	"time"

	"bookgraph/internal/author"
	"bookgraph/internal/book"

	"github.com/pkg/errors"
)

// Supported backend drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverBadger   = "badger"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown store driver")

// Store owns one backend connection and the repositories bound to it.
// The caller opens it once and must Close it.
type Store interface {
	Books() book.Repository
	Authors() author.Repository
	Ping(ctx context.Context) error
	// Reset removes every record. Tests use it to isolate cases.
	Reset(ctx context.Context) error
	Close(ctx context.Context) error
}

// Config selects and parameterizes a backend.
type Config struct {
	Driver        string
	PostgresDSN   string
	MongoURI      string
	MongoDatabase string
	SQLitePath    string
	BadgerDir     string
	QueryTimeout  time.Duration
}

// Open connects to the configured backend and verifies it is reachable.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 5 * time.Second
	}

	switch cfg.Driver {
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.PostgresDSN, cfg.QueryTimeout)
	case DriverMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	case DriverBadger:
		return OpenBadger(cfg.BadgerDir)
	default:
		return nil, errors.Wrapf(ErrUnknownDriver, "%q", cfg.Driver)
	}
}
