package author

import "context"

// Repository defines the contract for author data storage.
type Repository interface {
	Insert(ctx context.Context, a *Author) (string, error)
	ListAll(ctx context.Context) ([]Author, error)
	Count(ctx context.Context) (int, error)
}
