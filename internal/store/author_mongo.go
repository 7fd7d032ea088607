package store

import (
	"context"

	"bookgraph/internal/author"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type authorDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Born *int32             `bson:"born,omitempty"`
}

type AuthorMongo struct {
	coll *mongo.Collection
}

func NewAuthorMongo(coll *mongo.Collection) *AuthorMongo {
	return &AuthorMongo{coll: coll}
}

func (r *AuthorMongo) Insert(ctx context.Context, a *author.Author) (string, error) {
	doc := authorDocument{ID: primitive.NewObjectID(), Name: a.Name, Born: a.Born}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", errors.Wrap(err, "insert author")
	}
	return doc.ID.Hex(), nil
}

func (r *AuthorMongo) ListAll(ctx context.Context) ([]author.Author, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "find authors")
	}

	var docs []authorDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode authors")
	}

	authors := make([]author.Author, 0, len(docs))
	for _, d := range docs {
		authors = append(authors, author.Author{ID: d.ID.Hex(), Name: d.Name, Born: d.Born})
	}
	return authors, nil
}

func (r *AuthorMongo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrap(err, "count authors")
	}
	return int(n), nil
}
