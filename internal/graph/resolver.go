package graph

import (
	"context"

	"bookgraph/internal/author"
	"bookgraph/internal/book"

	"github.com/samber/lo"
)

// Resolver is the root Query resolver.
type Resolver struct {
	books   BookReader
	authors AuthorReader
}

func NewResolver(books BookReader, authors AuthorReader) *Resolver {
	return &Resolver{books: books, authors: authors}
}

func (r *Resolver) AllBooks(ctx context.Context) ([]*bookResolver, error) {
	books, err := r.books.ListAll(ctx)
	if err != nil {
		return nil, toGraphError(err)
	}
	return lo.Map(books, func(b book.Book, _ int) *bookResolver {
		return &bookResolver{b: b}
	}), nil
}

func (r *Resolver) BookCount(ctx context.Context) (int32, error) {
	n, err := r.books.Count(ctx)
	if err != nil {
		return 0, toGraphError(err)
	}
	return int32(n), nil
}

func (r *Resolver) AllAuthors(ctx context.Context) ([]*authorResolver, error) {
	authors, err := r.authors.ListAll(ctx)
	if err != nil {
		return nil, toGraphError(err)
	}
	return lo.Map(authors, func(a author.Author, _ int) *authorResolver {
		return &authorResolver{a: a}
	}), nil
}

func (r *Resolver) AuthorCount(ctx context.Context) (int32, error) {
	n, err := r.authors.Count(ctx)
	if err != nil {
		return 0, toGraphError(err)
	}
	return int32(n), nil
}

// bookResolver exposes only the schema fields of a book; the store id
// stays internal.
type bookResolver struct {
	b book.Book
}

func (r *bookResolver) Title() string { return r.b.Title }
func (r *bookResolver) Author() string { return r.b.Author }

func (r *bookResolver) Genres() []string {
	if r.b.Genres == nil {
		return []string{}
	}
	return r.b.Genres
}

type authorResolver struct {
	a author.Author
}

func (r *authorResolver) Name() string { return r.a.Name }
func (r *authorResolver) Born() *int32 { return r.a.Born }
