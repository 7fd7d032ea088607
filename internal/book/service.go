package book

import (
	"context"
	"fmt"

	"bookgraph/internal/validation"

	"go.uber.org/zap"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
	log  *zap.Logger
}

// NewService creates a new book service.
func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// Create validates b and stores it. The assigned id is written back to b.
func (s *Service) Create(ctx context.Context, b *Book) (string, error) {
	if err := validation.Struct(b); err != nil {
		return "", err
	}
	if b.Genres == nil {
		b.Genres = []string{}
	}

	id, err := s.repo.Insert(ctx, b)
	if err != nil {
		return "", s.unavailable("insert", err)
	}
	b.ID = id
	return id, nil
}

// ListAll returns every stored book.
func (s *Service) ListAll(ctx context.Context) ([]Book, error) {
	books, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, s.unavailable("list", err)
	}
	for i := range books {
		if books[i].Genres == nil {
			books[i].Genres = []string{}
		}
	}
	return books, nil
}

// Count returns the number of stored books.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, s.unavailable("count", err)
	}
	return n, nil
}

func (s *Service) unavailable(op string, err error) error {
	s.log.Error("book store failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, op, err)
}
