package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"bookgraph/internal/book"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// BookSQLite stores genres as a JSON array in a single column.
type BookSQLite struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewBookSQLite(db *sql.DB, sb sq.StatementBuilderType) *BookSQLite {
	return &BookSQLite{db: db, sb: sb}
}

func (r *BookSQLite) Insert(ctx context.Context, b *book.Book) (string, error) {
	genres := b.Genres
	if genres == nil {
		genres = []string{}
	}
	encoded, err := json.Marshal(genres)
	if err != nil {
		return "", errors.Wrap(err, "encode genres")
	}

	id := uuid.New().String()
	query, args, err := r.sb.Insert("books").
		Columns("id", "title", "author", "genres").
		Values(id, b.Title, b.Author, string(encoded)).
		ToSql()
	if err != nil {
		return "", errors.Wrap(err, "build insert book")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", errors.Wrap(err, "insert book")
	}
	return id, nil
}

func (r *BookSQLite) ListAll(ctx context.Context) ([]book.Book, error) {
	query, args, err := r.sb.Select("id", "title", "author", "genres").
		From("books").
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build list books")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var (
			b      book.Book
			genres string
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &genres); err != nil {
			return nil, errors.Wrap(err, "scan book")
		}
		if err := json.Unmarshal([]byte(genres), &b.Genres); err != nil {
			return nil, errors.Wrapf(err, "decode genres of book %s", b.ID)
		}
		books = append(books, b)
	}
	return books, errors.Wrap(rows.Err(), "list books")
}

func (r *BookSQLite) Count(ctx context.Context) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("books").ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build count books")
	}
	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "count books")
	}
	return total, nil
}
