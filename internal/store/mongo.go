package store

import (
	"context"
	"time"

	"bookgraph/internal/author"
	"bookgraph/internal/book"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	booksCollection   = "books"
	authorsCollection = "authors"
)

// MongoStore keeps books and authors as documents in one MongoDB database.
type MongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	books   *BookMongo
	authors *AuthorMongo
}

// OpenMongo connects to uri and pings the primary.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		return nil, errors.New("mongo database name is empty")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrapf(err, "connect mongo (%s)", RedactDSN(uri))
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrapf(err, "ping mongo (%s)", RedactDSN(uri))
	}
	return NewMongoStore(client, database), nil
}

// NewMongoStore wraps a connected client.
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		client:  client,
		db:      db,
		books:   NewBookMongo(db.Collection(booksCollection)),
		authors: NewAuthorMongo(db.Collection(authorsCollection)),
	}
}

func (s *MongoStore) Books() book.Repository     { return s.books }
func (s *MongoStore) Authors() author.Repository { return s.authors }

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Reset drops the whole database.
func (s *MongoStore) Reset(ctx context.Context) error {
	return errors.Wrap(s.db.Drop(ctx), "drop database")
}

func (s *MongoStore) Close(ctx context.Context) error {
	return errors.Wrap(s.client.Disconnect(ctx), "disconnect mongo")
}
