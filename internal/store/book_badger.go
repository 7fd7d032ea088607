package store

import (
	"context"
	"encoding/json"

	"bookgraph/internal/book"

	"github.com/pkg/errors"
)

type BookBadger struct {
	c collection
}

func (r *BookBadger) Insert(_ context.Context, b *book.Book) (string, error) {
	doc := *b
	doc.ID = ""
	if doc.Genres == nil {
		doc.Genres = []string{}
	}
	id, err := r.c.put(doc)
	return id, errors.Wrap(err, "insert book")
}

func (r *BookBadger) ListAll(context.Context) ([]book.Book, error) {
	var books []book.Book
	err := r.c.each(func(id string, val []byte) error {
		var b book.Book
		if err := json.Unmarshal(val, &b); err != nil {
			return errors.Wrapf(err, "decode book %s", id)
		}
		b.ID = id
		books = append(books, b)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	return books, nil
}

func (r *BookBadger) Count(context.Context) (int, error) {
	n, err := r.c.count()
	return n, errors.Wrap(err, "count books")
}
