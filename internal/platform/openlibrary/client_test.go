package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchBooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "subject:fantasy", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "bookgraph-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"numFound":1,"docs":[{"key":"/works/OL1W","title":"Book 1","author_name":["Author 1"],"subject":["Fantasy","Magic"]}]}`))
	}))
	defer srv.Close()

	c := NewClient("bookgraph-test", 100, 0).WithBaseURL(srv.URL)
	res, err := c.SearchBooks(context.Background(), "fantasy", 2)

	require.NoError(t, err)
	require.Len(t, res.Docs, 1)
	assert.Equal(t, "Book 1", res.Docs[0].Title)
	assert.Equal(t, []string{"Author 1"}, res.Docs[0].AuthorNames)
	assert.Equal(t, []string{"Fantasy", "Magic"}, res.Docs[0].Subjects)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"numFound":0,"docs":[]}`))
	}))
	defer srv.Close()

	c := NewClient("bookgraph-test", 100, 1).WithBaseURL(srv.URL)
	res, err := c.SearchBooks(context.Background(), "history", 1)

	require.NoError(t, err)
	assert.Empty(t, res.Docs)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("bookgraph-test", 100, 3).WithBaseURL(srv.URL)
	_, err := c.SearchBooks(context.Background(), "history", 1)

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
