package author

import "errors"

// ErrDataUnavailable is returned when the author store cannot be reached.
var ErrDataUnavailable = errors.New("author data unavailable")

// Author is stored on its own. Book.Author holds a free-form name and is
// not linked to these records.
type Author struct {
	ID   string `json:"id" bson:"-"`
	Name string `json:"name" bson:"name" validate:"required,notblank,utf8"`
	Born *int32 `json:"born,omitempty" bson:"born,omitempty" validate:"omitempty,gte=0"`
}
