package book

import (
	"errors"
)

// ErrDataUnavailable is returned when the book store cannot be reached.
var ErrDataUnavailable = errors.New("book data unavailable")

// Book represents a book record.
type Book struct {
	ID     string   `json:"id" bson:"-"`
	Title  string   `json:"title" bson:"title" validate:"required,notblank,utf8"`
	Author string   `json:"author" bson:"author" validate:"required,notblank,utf8"`
	Genres []string `json:"genres" bson:"genres" validate:"dive,notblank,utf8"`
}
