package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookgraph/internal/author"
	"bookgraph/internal/book"
	"bookgraph/internal/graph"
	"bookgraph/internal/store"

	"github.com/stretchr/testify/require"
)

// Book1 and Book2 are the fixture books seeded by the query suites.
var (
	Book1 = book.Book{Title: "Book 1", Author: "Author 1", Genres: []string{"Genre 1"}}
	Book2 = book.Book{Title: "Book 2", Author: "Author 2", Genres: []string{"Genre 2"}}
)

// AllBooksQuery selects every field of every book.
const AllBooksQuery = `
	query {
		allBooks {
			title
			author
			genres
		}
	}
`

// Ephemeral is a disposable in-memory store with services and schema wired
// on top. Start it once per test binary, Reset it before each test and Stop
// it when the suite ends.
type Ephemeral struct {
	Store   store.Store
	Books   *book.Service
	Authors *author.Service
	Schema  *graph.Schema
}

// StartEphemeral opens a fresh in-memory SQLite store.
func StartEphemeral(ctx context.Context) (*Ephemeral, error) {
	s, err := store.OpenSQLite(ctx, store.MemoryPath)
	if err != nil {
		return nil, err
	}
	e, err := NewEphemeral(s)
	if err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return e, nil
}

// NewEphemeral wires services and schema over s.
func NewEphemeral(s store.Store) (*Ephemeral, error) {
	books := book.NewService(s.Books(), nil)
	authors := author.NewService(s.Authors(), nil)
	schema, err := graph.NewSchema(books, authors, graph.Options{})
	if err != nil {
		return nil, err
	}
	return &Ephemeral{Store: s, Books: books, Authors: authors, Schema: schema}, nil
}

// Stop releases the store.
func (e *Ephemeral) Stop(ctx context.Context) error {
	return e.Store.Close(ctx)
}

// Reset wipes every record.
func (e *Ephemeral) Reset(t testing.TB) {
	t.Helper()
	require.NoError(t, e.Store.Reset(context.Background()))
}

// SeedBooks stores books through the book service.
func (e *Ephemeral) SeedBooks(t testing.TB, books ...book.Book) {
	t.Helper()
	for _, b := range books {
		b := b
		b.Genres = append([]string(nil), b.Genres...)
		_, err := e.Books.Create(context.Background(), &b)
		require.NoError(t, err)
	}
}

// BookJSON is one element of an allBooks response.
type BookJSON struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Genres []string `json:"genres"`
}

// AllBooks runs AllBooksQuery and returns the decoded list together with
// the raw result.
func (e *Ephemeral) AllBooks(t testing.TB) ([]BookJSON, graph.Result) {
	t.Helper()
	res, err := e.Schema.Do(context.Background(), AllBooksQuery, nil)
	require.NoError(t, err)

	var data struct {
		AllBooks []BookJSON `json:"allBooks"`
	}
	require.NoError(t, res.DecodeData(&data))
	return data.AllBooks, res
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorCodes returns extensions.code of every entry in an "errors" list.
func ErrorCodes(body map[string]interface{}) []string {
	list, _ := body["errors"].([]interface{})
	var codes []string
	for _, item := range list {
		entry, _ := item.(map[string]interface{})
		ext, _ := entry["extensions"].(map[string]interface{})
		if code, ok := ext["code"].(string); ok {
			codes = append(codes, code)
		}
	}
	return codes
}
