package store

import (
	"context"
	"time"

	"bookgraph/internal/author"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type AuthorPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewAuthorPG(db *pgxpool.Pool, timeout time.Duration) *AuthorPG {
	return &AuthorPG{db: db, timeout: timeout}
}

func (r *AuthorPG) Insert(ctx context.Context, a *author.Author) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var id string
	err := r.db.QueryRow(ctx,
		`INSERT INTO authors (name, born, created_at) VALUES ($1, $2, NOW()) RETURNING id::text`,
		a.Name, a.Born,
	).Scan(&id)
	if err != nil {
		return "", errors.Wrap(err, "insert author")
	}
	return id, nil
}

func (r *AuthorPG) ListAll(ctx context.Context) ([]author.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id::text, name, born FROM authors ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "list authors")
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Born); err != nil {
			return nil, errors.Wrap(err, "scan author")
		}
		authors = append(authors, a)
	}
	return authors, errors.Wrap(rows.Err(), "list authors")
}

func (r *AuthorPG) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "count authors")
	}
	return total, nil
}
