package graph_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"testing"

	"bookgraph/internal/author"
	"bookgraph/internal/book"
	"bookgraph/internal/graph"
	"bookgraph/internal/testutil"
	"bookgraph/internal/validation"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var env *testutil.Ephemeral

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	env, err = testutil.StartEphemeral(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start ephemeral store: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := env.Stop(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "stop ephemeral store: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func toJSON(books ...book.Book) []testutil.BookJSON {
	return lo.Map(books, func(b book.Book, _ int) testutil.BookJSON {
		return testutil.BookJSON{Title: b.Title, Author: b.Author, Genres: b.Genres}
	})
}

func TestQuery_AllBooks(t *testing.T) {
	t.Run("should return all books when no filters are applied", func(t *testing.T) {
		env.Reset(t)
		env.SeedBooks(t, testutil.Book1, testutil.Book2)

		books, res := env.AllBooks(t)

		assert.Empty(t, res.Errors)
		require.Len(t, books, 2)
		assert.ElementsMatch(t, toJSON(testutil.Book1, testutil.Book2), books)
	})

	t.Run("empty store returns an empty list", func(t *testing.T) {
		env.Reset(t)

		books, res := env.AllBooks(t)

		assert.Empty(t, res.Errors)
		assert.NotNil(t, books)
		assert.Empty(t, books)
		assert.JSONEq(t, `{"allBooks":[]}`, string(res.Data))
	})

	t.Run("books without genres return an empty genre list", func(t *testing.T) {
		env.Reset(t)
		env.SeedBooks(t, book.Book{Title: "Untagged", Author: "Anon"})

		books, res := env.AllBooks(t)

		assert.Empty(t, res.Errors)
		require.Len(t, books, 1)
		assert.NotNil(t, books[0].Genres)
		assert.Empty(t, books[0].Genres)
	})
}

func TestQuery_AllBooks_Completeness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 5; round++ {
		env.Reset(t)

		n := rng.Intn(20)
		var seeded []book.Book
		for i := 0; i < n; i++ {
			genres := make([]string, rng.Intn(4))
			for g := range genres {
				genres[g] = fmt.Sprintf("Genre %d", rng.Intn(5))
			}
			b := book.Book{
				Title:  fmt.Sprintf("Book %d", rng.Intn(10)),
				Author: fmt.Sprintf("Author %d", rng.Intn(3)),
				Genres: genres,
			}
			seeded = append(seeded, b)
		}
		env.SeedBooks(t, seeded...)

		books, res := env.AllBooks(t)

		require.Empty(t, res.Errors, "round %d", round)
		require.Len(t, books, n, "round %d", round)
		assert.ElementsMatch(t, toJSON(seeded...), books, "round %d", round)
	}
}

func TestQuery_AllBooks_Isolation(t *testing.T) {
	t.Run("first scope", func(t *testing.T) {
		env.Reset(t)
		env.SeedBooks(t, testutil.Book1)

		books, _ := env.AllBooks(t)
		assert.Len(t, books, 1)
	})

	t.Run("second scope", func(t *testing.T) {
		env.Reset(t)

		books, _ := env.AllBooks(t)
		assert.Empty(t, books)
	})
}

func TestQuery_AllBooks_RejectedRecordIsNotStored(t *testing.T) {
	env.Reset(t)
	env.SeedBooks(t, testutil.Book1)

	_, err := env.Books.Create(context.Background(), &book.Book{Title: "bad\xff", Author: "Y"})
	require.ErrorIs(t, err, validation.ErrInvalid)

	books, res := env.AllBooks(t)
	require.Empty(t, res.Errors)
	assert.Equal(t, toJSON(testutil.Book1), books)
}

func TestQuery_AllBooks_FieldProjection(t *testing.T) {
	env.Reset(t)
	env.SeedBooks(t, testutil.Book1)

	_, res := env.AllBooks(t)
	require.Empty(t, res.Errors)

	var raw struct {
		AllBooks []map[string]json.RawMessage `json:"allBooks"`
	}
	require.NoError(t, res.DecodeData(&raw))
	require.Len(t, raw.AllBooks, 1)
	assert.ElementsMatch(t, []string{"title", "author", "genres"}, lo.Keys(raw.AllBooks[0]))

	res, err := env.Schema.Do(context.Background(), `{ allBooks { id title } }`, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Errors, "id must not be queryable")
}

func TestQuery_AllBooks_DataUnavailable(t *testing.T) {
	ctx := context.Background()
	broken, err := testutil.StartEphemeral(ctx)
	require.NoError(t, err)
	broken.SeedBooks(t, testutil.Book1)
	require.NoError(t, broken.Stop(ctx))

	books, res := broken.AllBooks(t)

	require.NotEmpty(t, res.Errors)
	assert.Nil(t, books)
	assert.Equal(t, "data unavailable", res.Errors[0].Message)
	assert.Equal(t, graph.CodeDataUnavailable, res.Errors[0].Extensions["code"])
	assert.Equal(t, []interface{}{"allBooks"}, res.Errors[0].Path)
}

func TestQuery_Counts(t *testing.T) {
	env.Reset(t)
	env.SeedBooks(t, testutil.Book1, testutil.Book2, testutil.Book2)
	_, err := env.Authors.Create(context.Background(), &author.Author{Name: "Author 1"})
	require.NoError(t, err)

	res, err := env.Schema.Do(context.Background(), `{ bookCount authorCount }`, nil)
	require.NoError(t, err)
	require.Empty(t, res.Errors)

	var data struct {
		BookCount   int `json:"bookCount"`
		AuthorCount int `json:"authorCount"`
	}
	require.NoError(t, res.DecodeData(&data))
	assert.Equal(t, 3, data.BookCount)
	assert.Equal(t, 1, data.AuthorCount)
}

type authorJSON struct {
	Name string `json:"name"`
	Born *int32 `json:"born"`
}

func TestQuery_AllAuthors(t *testing.T) {
	env.Reset(t)
	born := int32(1965)
	_, err := env.Authors.Create(context.Background(), &author.Author{Name: "Author 1", Born: &born})
	require.NoError(t, err)
	_, err = env.Authors.Create(context.Background(), &author.Author{Name: "Author 2"})
	require.NoError(t, err)

	res, err := env.Schema.Do(context.Background(), `{ allAuthors { name born } }`, nil)
	require.NoError(t, err)
	require.Empty(t, res.Errors)

	var data struct {
		AllAuthors []authorJSON `json:"allAuthors"`
	}
	require.NoError(t, res.DecodeData(&data))
	require.Len(t, data.AllAuthors, 2)

	byName := lo.KeyBy(data.AllAuthors, func(a authorJSON) string { return a.Name })
	require.NotNil(t, byName["Author 1"].Born)
	assert.Equal(t, born, *byName["Author 1"].Born)
	assert.Nil(t, byName["Author 2"].Born)
}

func TestNewSchema_MaxDepth(t *testing.T) {
	s, err := graph.NewSchema(env.Books, env.Authors, graph.Options{MaxDepth: 1})
	require.NoError(t, err)

	res, err := s.Do(context.Background(), testutil.AllBooksQuery, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Errors)
}
