package store

import (
	"context"
	"database/sql"

	"bookgraph/internal/author"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type AuthorSQLite struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewAuthorSQLite(db *sql.DB, sb sq.StatementBuilderType) *AuthorSQLite {
	return &AuthorSQLite{db: db, sb: sb}
}

func (r *AuthorSQLite) Insert(ctx context.Context, a *author.Author) (string, error) {
	var born sql.NullInt32
	if a.Born != nil {
		born = sql.NullInt32{Int32: *a.Born, Valid: true}
	}

	id := uuid.New().String()
	query, args, err := r.sb.Insert("authors").
		Columns("id", "name", "born").
		Values(id, a.Name, born).
		ToSql()
	if err != nil {
		return "", errors.Wrap(err, "build insert author")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", errors.Wrap(err, "insert author")
	}
	return id, nil
}

func (r *AuthorSQLite) ListAll(ctx context.Context) ([]author.Author, error) {
	query, args, err := r.sb.Select("id", "name", "born").From("authors").OrderBy("seq").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build list authors")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list authors")
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		var (
			a    author.Author
			born sql.NullInt32
		)
		if err := rows.Scan(&a.ID, &a.Name, &born); err != nil {
			return nil, errors.Wrap(err, "scan author")
		}
		if born.Valid {
			v := born.Int32
			a.Born = &v
		}
		authors = append(authors, a)
	}
	return authors, errors.Wrap(rows.Err(), "list authors")
}

func (r *AuthorSQLite) Count(ctx context.Context) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("authors").ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build count authors")
	}
	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "count authors")
	}
	return total, nil
}
