package ingest

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookgraph/internal/author"
	"bookgraph/internal/book"
	"bookgraph/internal/platform/openlibrary"
	"bookgraph/internal/validation"

	"go.uber.org/zap"
)

type Config struct {
	Subjects  []string
	BooksMax  int
	GenresMax int
}

type OpenLibraryClient interface {
	SearchBooks(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error)
}

type BookCreator interface {
	Create(ctx context.Context, b *book.Book) (string, error)
}

type AuthorCreator interface {
	Create(ctx context.Context, a *author.Author) (string, error)
}

// Service copies books found on Open Library into the local stores.
type Service struct {
	olClient OpenLibraryClient
	books    BookCreator
	authors  AuthorCreator
	cfg      Config
	log      *zap.Logger
}

func NewService(olClient OpenLibraryClient, books BookCreator, authors AuthorCreator, cfg Config, log *zap.Logger) *Service {
	if cfg.GenresMax <= 0 {
		cfg.GenresMax = 3
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		olClient: olClient,
		books:    books,
		authors:  authors,
		cfg:      cfg,
		log:      log,
	}
}

// Run fetches up to BooksMax books per subject. Records Open Library
// returns without a title or author are skipped; any other failure stops
// the run.
func (s *Service) Run(ctx context.Context) (*Run, error) {
	run := &Run{Subjects: s.cfg.Subjects, StartedAt: time.Now()}
	defer func() { run.FinishedAt = time.Now() }()

	seenAuthors := make(map[string]bool)

	for _, subject := range s.cfg.Subjects {
		res, err := s.olClient.SearchBooks(ctx, subject, s.cfg.BooksMax)
		if err != nil {
			return run, err
		}
		run.BooksFetched += len(res.Docs)

		for _, doc := range res.Docs {
			b := toBook(doc, subject, s.cfg.GenresMax)
			if _, err := s.books.Create(ctx, &b); err != nil {
				if errors.Is(err, validation.ErrInvalid) {
					s.log.Debug("skipping incomplete record", zap.String("key", doc.Key), zap.Error(err))
					run.BooksSkipped++
					continue
				}
				return run, err
			}
			run.BooksCreated++

			if seenAuthors[b.Author] {
				continue
			}
			seenAuthors[b.Author] = true
			if _, err := s.authors.Create(ctx, &author.Author{Name: b.Author}); err != nil {
				return run, err
			}
			run.AuthorsCreated++
		}

		s.log.Info("subject ingested", zap.String("subject", subject), zap.Int("fetched", len(res.Docs)))
	}
	return run, nil
}

func toBook(doc openlibrary.SearchDoc, subject string, genresMax int) book.Book {
	b := book.Book{Title: strings.TrimSpace(doc.Title)}
	if len(doc.AuthorNames) > 0 {
		b.Author = strings.TrimSpace(doc.AuthorNames[0])
	}

	genres := []string{subject}
	seen := map[string]bool{strings.ToLower(subject): true}
	for _, s := range doc.Subjects {
		if len(genres) >= genresMax {
			break
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			continue
		}
		seen[strings.ToLower(s)] = true
		genres = append(genres, s)
	}
	b.Genres = genres
	return b
}
