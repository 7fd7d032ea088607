package store

import (
	"context"

	"bookgraph/internal/book"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	Genres []string           `bson:"genres"`
}

type BookMongo struct {
	coll *mongo.Collection
}

func NewBookMongo(coll *mongo.Collection) *BookMongo {
	return &BookMongo{coll: coll}
}

func (r *BookMongo) Insert(ctx context.Context, b *book.Book) (string, error) {
	doc := bookDocument{
		ID:     primitive.NewObjectID(),
		Title:  b.Title,
		Author: b.Author,
		Genres: b.Genres,
	}
	if doc.Genres == nil {
		doc.Genres = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", errors.Wrap(err, "insert book")
	}
	return doc.ID.Hex(), nil
}

func (r *BookMongo) ListAll(ctx context.Context) ([]book.Book, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "find books")
	}

	var docs []bookDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode books")
	}

	books := make([]book.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, book.Book{
			ID:     d.ID.Hex(),
			Title:  d.Title,
			Author: d.Author,
			Genres: d.Genres,
		})
	}
	return books, nil
}

func (r *BookMongo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrap(err, "count books")
	}
	return int(n), nil
}
