package store

import (
	"context"
	"encoding/json"

	"bookgraph/internal/author"
	"bookgraph/internal/book"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// BadgerStore keeps JSON documents in an embedded badger database, keyed by
// "<collection>/<uuidv7>". An empty dir keeps everything in memory.
type BadgerStore struct {
	db      *badger.DB
	books   *BookBadger
	authors *AuthorBadger
}

func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger")
	}
	return &BadgerStore{
		db:      db,
		books:   &BookBadger{c: collection{db: db, prefix: []byte("book/")}},
		authors: &AuthorBadger{c: collection{db: db, prefix: []byte("author/")}},
	}, nil
}

func (s *BadgerStore) Books() book.Repository     { return s.books }
func (s *BadgerStore) Authors() author.Repository { return s.authors }

func (s *BadgerStore) Ping(context.Context) error {
	if s.db.IsClosed() {
		return badger.ErrDBClosed
	}
	return nil
}

func (s *BadgerStore) Reset(context.Context) error {
	if s.db.IsClosed() {
		return badger.ErrDBClosed
	}
	return errors.Wrap(s.db.DropAll(), "drop badger data")
}

func (s *BadgerStore) Close(context.Context) error {
	return errors.Wrap(s.db.Close(), "close badger")
}

// collection is a key prefix holding JSON encoded documents.
type collection struct {
	db     *badger.DB
	prefix []byte
}

func (c collection) put(doc interface{}) (string, error) {
	if c.db.IsClosed() {
		return "", badger.ErrDBClosed
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", errors.Wrap(err, "generate id")
	}
	val, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "encode document")
	}
	key := append(append([]byte{}, c.prefix...), id.String()...)
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
	if err != nil {
		return "", errors.Wrapf(err, "put %s", key)
	}
	return id.String(), nil
}

// each calls fn with the id and raw value of every document, in key order.
func (c collection) each(fn func(id string, val []byte) error) error {
	if c.db.IsClosed() {
		return badger.ErrDBClosed
	}
	return c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = c.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(c.prefix):])
			if err := item.Value(func(val []byte) error { return fn(id, val) }); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c collection) count() (int, error) {
	if c.db.IsClosed() {
		return 0, badger.ErrDBClosed
	}
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = c.prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
