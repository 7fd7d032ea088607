package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"bookgraph/internal/author"
	"bookgraph/internal/book"
	"bookgraph/internal/config"
	"bookgraph/internal/ingest"
	"bookgraph/internal/platform/logging"
	"bookgraph/internal/platform/openlibrary"
	"bookgraph/internal/store"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type options struct {
	source   string
	subjects []string
	limit    int
	reset    bool
}

func main() {
	var (
		source   = flag.String("source", "fixtures", "Seed source: fixtures, openlibrary")
		subjects = flag.String("subject", "fiction", "Comma-separated Open Library subjects")
		limit    = flag.Int("limit", 20, "Books fetched per subject")
		reset    = flag.Bool("reset", false, "Remove existing records first")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	opts := options{
		source:   *source,
		subjects: parseSubjects(*subjects),
		limit:    *limit,
		reset:    *reset,
	}
	if err := run(context.Background(), cfg, opts, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

// parseSubjects splits a comma-separated flag value, dropping blank parts.
func parseSubjects(s string) []string {
	return lo.FilterMap(strings.Split(s, ","), func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *zap.Logger) (err error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return errors.Wrapf(err, "open %s store", cfg.Store.Driver)
	}
	defer func() {
		if closeErr := st.Close(ctx); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "close store")
		}
	}()

	return seed(ctx, st, opts, logger)
}

func seed(ctx context.Context, st store.Store, opts options, logger *zap.Logger) error {
	if opts.reset {
		if err := st.Reset(ctx); err != nil {
			return errors.Wrap(err, "reset store")
		}
	}

	books := book.NewService(st.Books(), logger.Named("book"))
	authors := author.NewService(st.Authors(), logger.Named("author"))

	switch opts.source {
	case "fixtures":
		nAuthors, nBooks, err := seedFixtures(ctx, books, authors)
		if err != nil {
			return errors.Wrap(err, "seed fixtures")
		}
		logger.Info("seeded fixtures", zap.Int("authors", nAuthors), zap.Int("books", nBooks))
	case "openlibrary":
		if len(opts.subjects) == 0 {
			return errors.New("at least one subject is required")
		}
		client := openlibrary.NewClient("bookgraph-seed/1.0", 1, 3)
		svc := ingest.NewService(client, books, authors, ingest.Config{
			Subjects: opts.subjects,
			BooksMax: opts.limit,
		}, logger.Named("ingest"))
		summary, err := svc.Run(ctx)
		if err != nil {
			return errors.Wrap(err, "ingest")
		}
		logger.Info("ingested books",
			zap.Strings("subjects", summary.Subjects),
			zap.Int("fetched", summary.BooksFetched),
			zap.Int("created", summary.BooksCreated),
			zap.Int("skipped", summary.BooksSkipped),
			zap.Int("authors", summary.AuthorsCreated),
			zap.Duration("took", summary.FinishedAt.Sub(summary.StartedAt)),
		)
	default:
		return fmt.Errorf("unknown source %q: use fixtures or openlibrary", opts.source)
	}
	return nil
}
