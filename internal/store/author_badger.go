package store

import (
	"context"
	"encoding/json"

	"bookgraph/internal/author"

	"github.com/pkg/errors"
)

type AuthorBadger struct {
	c collection
}

func (r *AuthorBadger) Insert(_ context.Context, a *author.Author) (string, error) {
	doc := *a
	doc.ID = ""
	id, err := r.c.put(doc)
	return id, errors.Wrap(err, "insert author")
}

func (r *AuthorBadger) ListAll(context.Context) ([]author.Author, error) {
	var authors []author.Author
	err := r.c.each(func(id string, val []byte) error {
		var a author.Author
		if err := json.Unmarshal(val, &a); err != nil {
			return errors.Wrapf(err, "decode author %s", id)
		}
		a.ID = id
		authors = append(authors, a)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "list authors")
	}
	return authors, nil
}

func (r *AuthorBadger) Count(context.Context) (int, error) {
	n, err := r.c.count()
	return n, errors.Wrap(err, "count authors")
}
