package ingest

import (
	"time"
)

// Run summarizes one ingestion pass.
type Run struct {
	Subjects       []string
	StartedAt      time.Time
	FinishedAt     time.Time
	BooksFetched   int
	BooksCreated   int
	BooksSkipped   int
	AuthorsCreated int
}
