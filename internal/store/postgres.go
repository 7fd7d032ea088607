package store

import (
	"context"
	"time"

	"bookgraph/internal/author"
	"bookgraph/internal/book"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PGStore keeps books and authors in Postgres. The schema comes from the
// goose migrations under db/migrations.
type PGStore struct {
	db      *pgxpool.Pool
	books   *BookPG
	authors *AuthorPG
}

// OpenPostgres creates a pool for dsn and pings it.
func OpenPostgres(ctx context.Context, dsn string, timeout time.Duration) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrapf(err, "ping database (%s)", RedactDSN(dsn))
	}
	return NewPGStore(pool, timeout), nil
}

// NewPGStore wraps an already opened pool.
func NewPGStore(db *pgxpool.Pool, timeout time.Duration) *PGStore {
	return &PGStore{
		db:      db,
		books:   NewBookPG(db, timeout),
		authors: NewAuthorPG(db, timeout),
	}
}

func (s *PGStore) Books() book.Repository     { return s.books }
func (s *PGStore) Authors() author.Repository { return s.authors }

// Pool exposes the underlying pool for migrations.
func (s *PGStore) Pool() *pgxpool.Pool { return s.db }

func (s *PGStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PGStore) Reset(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `TRUNCATE TABLE books, authors`)
	return errors.Wrap(err, "truncate tables")
}

func (s *PGStore) Close(context.Context) error {
	s.db.Close()
	return nil
}
