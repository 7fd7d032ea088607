// Package validation checks records against their `validate` struct tags
// before they are handed to a store.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every *Error returned by Struct.
var ErrInvalid = errors.New("validation failed")

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name[:1]) + f.Name[1:]
		}
		return name
	})
	validate.RegisterValidation("notblank", validateNotBlank)
	validate.RegisterValidation("utf8", validateUTF8)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateUTF8 rejects text that GraphQL output could not return byte for byte.
func validateUTF8(fl validator.FieldLevel) bool {
	return utf8.ValidString(fl.Field().String())
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when a record fails validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalid.Error(), strings.Join(msgs, "; "))
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Struct validates s and returns nil or an *Error.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return &Error{Fields: []FieldError{{Message: "record is required"}}}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{}
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		param := fe.Param()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "notblank":
			message = fmt.Sprintf("%s must not be blank", field)
		case "utf8":
			message = fmt.Sprintf("%s must be valid UTF-8", field)
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, param)
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", field, param)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		out.Fields = append(out.Fields, FieldError{
			Field:   field,
			Message: message,
		})
	}
	return out
}

// fieldPath drops the leading struct name from a validator namespace,
// "Book.genres[1]" becomes "genres[1]".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
