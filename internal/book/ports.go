package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	Insert(ctx context.Context, b *Book) (string, error)
	ListAll(ctx context.Context) ([]Book, error)
	Count(ctx context.Context) (int, error)
}
