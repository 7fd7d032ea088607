package author

import (
	"context"
	"fmt"

	"bookgraph/internal/validation"

	"go.uber.org/zap"
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, a *Author) (string, error) {
	if err := validation.Struct(a); err != nil {
		return "", err
	}
	id, err := s.repo.Insert(ctx, a)
	if err != nil {
		return "", s.unavailable("insert", err)
	}
	a.ID = id
	return id, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Author, error) {
	authors, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, s.unavailable("list", err)
	}
	return authors, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, s.unavailable("count", err)
	}
	return n, nil
}

func (s *Service) unavailable(op string, err error) error {
	s.log.Error("author store failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, op, err)
}
