package graph

import (
	"errors"

	"bookgraph/internal/author"
	"bookgraph/internal/book"
)

// Error codes reported in the extensions of a GraphQL error.
const (
	CodeDataUnavailable = "DATA_UNAVAILABLE"
	CodeInternal        = "INTERNAL_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
)

// Error is returned from resolvers. graphql-go copies Extensions into the
// response error.
type Error struct {
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// toGraphError hides store details from clients.
func toGraphError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, book.ErrDataUnavailable) || errors.Is(err, author.ErrDataUnavailable) {
		return &Error{Code: CodeDataUnavailable, Message: "data unavailable", cause: err}
	}
	return &Error{Code: CodeInternal, Message: "internal error", cause: err}
}
