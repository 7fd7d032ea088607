package main

import (
	"context"

	"bookgraph/internal/author"
	"bookgraph/internal/book"

	"github.com/samber/lo"
)

func born(y int32) *int32 { return &y }

var fixtureAuthors = []author.Author{
	{Name: "Robert Martin", Born: born(1952)},
	{Name: "Martin Fowler", Born: born(1963)},
	{Name: "Fyodor Dostoevsky", Born: born(1821)},
	{Name: "Joshua Kerievsky"},
	{Name: "Sandi Metz"},
}

var fixtureBooks = []book.Book{
	{Title: "Clean Code", Author: "Robert Martin", Genres: []string{"refactoring"}},
	{Title: "Agile software development", Author: "Robert Martin", Genres: []string{"agile", "patterns", "design"}},
	{Title: "Refactoring, edition 2", Author: "Martin Fowler", Genres: []string{"refactoring"}},
	{Title: "Refactoring to patterns", Author: "Joshua Kerievsky", Genres: []string{"refactoring", "patterns"}},
	{Title: "Practical Object-Oriented Design, An Agile Primer Using Ruby", Author: "Sandi Metz", Genres: []string{"refactoring", "design"}},
	{Title: "Crime and punishment", Author: "Fyodor Dostoevsky", Genres: []string{"classic", "crime"}},
	{Title: "Demons", Author: "Fyodor Dostoevsky", Genres: []string{"classic", "revolution"}},
}

type bookCreator interface {
	Create(ctx context.Context, b *book.Book) (string, error)
}

type authorCreator interface {
	Create(ctx context.Context, a *author.Author) (string, error)
}

// seedFixtures inserts the fixture authors and books and returns how many
// of each were stored.
func seedFixtures(ctx context.Context, books bookCreator, authors authorCreator) (int, int, error) {
	for i := range fixtureAuthors {
		a := fixtureAuthors[i]
		if _, err := authors.Create(ctx, &a); err != nil {
			return 0, 0, err
		}
	}
	for i := range fixtureBooks {
		b := fixtureBooks[i]
		b.Genres = lo.Uniq(b.Genres)
		if _, err := books.Create(ctx, &b); err != nil {
			return len(fixtureAuthors), i, err
		}
	}
	return len(fixtureAuthors), len(fixtureBooks), nil
}
