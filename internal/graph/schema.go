// Package graph exposes the book and author stores as a GraphQL API.
package graph

import (
	"context"
	_ "embed"
	"encoding/json"

	"bookgraph/internal/author"
	"bookgraph/internal/book"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// DefaultMaxDepth bounds query nesting when no limit is configured.
const DefaultMaxDepth = 10

// BookReader is the part of book.Service the schema needs.
type BookReader interface {
	ListAll(ctx context.Context) ([]book.Book, error)
	Count(ctx context.Context) (int, error)
}

// AuthorReader is the part of author.Service the schema needs.
type AuthorReader interface {
	ListAll(ctx context.Context) ([]author.Author, error)
	Count(ctx context.Context) (int, error)
}

// Schema is an executable GraphQL schema bound to its resolvers.
type Schema struct {
	schema *graphql.Schema
	log    *zap.Logger
}

// Options tune schema execution.
type Options struct {
	MaxDepth int
	Logger   *zap.Logger
}

// NewSchema parses the embedded SDL against the root resolver.
func NewSchema(books BookReader, authors AuthorReader, opts Options) (*Schema, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s, err := graphql.ParseSchema(schemaSDL, NewResolver(books, authors), graphql.MaxDepth(opts.MaxDepth))
	if err != nil {
		return nil, err
	}
	return &Schema{schema: s, log: opts.Logger}, nil
}

// Request is a GraphQL request as sent over HTTP.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Exec runs one request and returns the raw GraphQL response.
func (s *Schema) Exec(ctx context.Context, req Request) *graphql.Response {
	resp := s.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	for _, qerr := range resp.Errors {
		s.log.Warn("graphql error",
			zap.String("operation", req.OperationName),
			zap.String("message", qerr.Message),
			zap.Any("path", qerr.Path),
		)
	}
	return resp
}

// Result is a decoded GraphQL response.
type Result struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []ResultError   `json:"errors,omitempty"`
}

// ResultError mirrors one entry of the response error list.
type ResultError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Do runs query in-process and decodes the response. An error is returned
// only when the response itself cannot be encoded or decoded; GraphQL
// errors are reported in Result.Errors.
func (s *Schema) Do(ctx context.Context, query string, variables map[string]interface{}) (Result, error) {
	resp := s.Exec(ctx, Request{Query: query, Variables: variables})
	raw, err := json.Marshal(resp)
	if err != nil {
		return Result{}, err
	}
	var out Result
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{}, err
	}
	return out, nil
}

// DecodeData unmarshals the data member into v. A null or missing data
// member leaves v untouched.
func (r Result) DecodeData(v interface{}) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}
