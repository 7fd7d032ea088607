package main

import (
	"context"
	"testing"

	"bookgraph/internal/author"
	"bookgraph/internal/book"
	"bookgraph/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFixtures(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(ctx) })

	books := book.NewService(st.Books(), nil)
	authors := author.NewService(st.Authors(), nil)

	nAuthors, nBooks, err := seedFixtures(ctx, books, authors)
	require.NoError(t, err)
	assert.Equal(t, len(fixtureAuthors), nAuthors)
	assert.Equal(t, len(fixtureBooks), nBooks)

	count, err := books.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(fixtureBooks), count)

	listed, err := authors.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, len(fixtureAuthors))
}

func TestSeedFixtures_DoesNotMutateFixtures(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenSQLite(ctx, store.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(ctx) })

	_, _, err = seedFixtures(ctx, book.NewService(st.Books(), nil), author.NewService(st.Authors(), nil))
	require.NoError(t, err)

	for _, b := range fixtureBooks {
		assert.Empty(t, b.ID)
	}
}
