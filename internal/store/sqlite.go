package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"bookgraph/internal/author"
	"bookgraph/internal/book"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// SQLiteStore keeps books and authors in a SQLite database file, or in
// memory when opened with MemoryPath.
type SQLiteStore struct {
	db      *sql.DB
	books   *BookSQLite
	authors *AuthorSQLite
}

// OpenSQLite opens path (created if missing) and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = MemoryPath
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "create sqlite directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := applySQLiteSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	return &SQLiteStore{
		db:      db,
		books:   NewBookSQLite(db, builder),
		authors: NewAuthorSQLite(db, builder),
	}, nil
}

func applySQLiteSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS books (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	genres TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS authors (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	born INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return errors.Wrap(err, "sqlite pragma")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "sqlite schema")
	}
	return nil
}

func (s *SQLiteStore) Books() book.Repository     { return s.books }
func (s *SQLiteStore) Authors() author.Repository { return s.authors }

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	for _, table := range []string{"books", "authors"} {
		query, args, err := sq.Delete(table).ToSql()
		if err != nil {
			return errors.Wrap(err, "build reset")
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "reset %s", table)
		}
	}
	return nil
}

func (s *SQLiteStore) Close(context.Context) error {
	return errors.Wrap(s.db.Close(), "close sqlite")
}
