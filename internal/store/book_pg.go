package store

import (
	"context"
	"time"

	"bookgraph/internal/book"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type BookPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewBookPG(db *pgxpool.Pool, timeout time.Duration) *BookPG {
	return &BookPG{db: db, timeout: timeout}
}

func (r *BookPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *BookPG) Insert(ctx context.Context, b *book.Book) (string, error) {
	const query = `
		INSERT INTO books (title, author, genres, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id::text`

	genres := b.Genres
	if genres == nil {
		genres = []string{}
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var id string
	if err := r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, genres).Scan(&id); err != nil {
		return "", errors.Wrap(err, "insert book")
	}
	return id, nil
}

func (r *BookPG) ListAll(ctx context.Context) ([]book.Book, error) {
	const query = `
		SELECT id::text, title, author, genres
		FROM books
		ORDER BY created_at, id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genres); err != nil {
			return nil, errors.Wrap(err, "scan book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	return books, nil
}

func (r *BookPG) Count(ctx context.Context) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var total int
	if err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "count books")
	}
	return total, nil
}
