package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stemsi/sherlock/internal/csvstore"
	"github.com/stemsi/sherlock/internal/fallback"
	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/normalize"
)

// Upserter writes one canonical record, reporting whether it was created.
type Upserter interface {
	Upsert(ctx context.Context, s *model.Student) (bool, error)
}

// ImportOptions tunes an import run.
type ImportOptions struct {
	// SeedWhenMissing loads the built-in roster when no CSV export exists.
	SeedWhenMissing bool
	// DryRun normalizes every row without writing.
	DryRun bool
}

// ImportStats summarizes an import run.
type ImportStats struct {
	Path      string `json:"path"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	Seeded    bool   `json:"seeded"`
}

// ImportService loads the CSV export into the database.
type ImportService struct {
	store Upserter
	docs  DocumentStore
	log   zerolog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(store Upserter, docs DocumentStore, log zerolog.Logger) *ImportService {
	return &ImportService{
		store: store,
		docs:  docs,
		log:   log.With().Str("component", "import_service").Logger(),
	}
}

// Import upserts every usable CSV row. Rows with neither an enrollment
// number nor a name are skipped; a failed row is counted and the run goes on.
func (s *ImportService) Import(ctx context.Context, opts ImportOptions) (*ImportStats, error) {
	doc, err := s.docs.Read(ctx)
	if errors.Is(err, csvstore.ErrNotFound) && opts.SeedWhenMissing {
		s.log.Warn().Msg("no CSV export found, seeding built-in roster")
		return s.seed(ctx, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}

	stats := &ImportStats{Path: doc.Path, Total: len(doc.Rows)}
	for _, row := range doc.Rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		student := normalize.Normalize(row, model.SourceCSV)
		if student.EnrollmentNumber == "" && student.FullName == "" {
			stats.Skipped++
			stats.Processed++
			continue
		}
		student = normalize.ForIngestion(student)
		s.write(ctx, &student, stats, opts.DryRun)

		if stats.Processed%10 == 0 {
			s.log.Info().Int("processed", stats.Processed).Int("total", stats.Total).Msg("import progress")
		}
	}

	s.log.Info().
		Str("path", stats.Path).
		Int("created", stats.Created).
		Int("updated", stats.Updated).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Msg("CSV import completed")
	return stats, nil
}

func (s *ImportService) seed(ctx context.Context, opts ImportOptions) (*ImportStats, error) {
	records := fallback.Records()
	stats := &ImportStats{Total: len(records), Seeded: true}
	for i := range records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		records[i].ID = 0
		s.write(ctx, &records[i], stats, opts.DryRun)
	}
	return stats, nil
}

func (s *ImportService) write(ctx context.Context, student *model.Student, stats *ImportStats, dryRun bool) {
	defer func() { stats.Processed++ }()
	if dryRun {
		return
	}

	created, err := s.store.Upsert(ctx, student)
	if err != nil {
		stats.Failed++
		s.log.Error().Err(err).
			Str("enrollment_number", student.EnrollmentNumber).
			Msg("failed to import record")
		return
	}
	if created {
		stats.Created++
	} else {
		stats.Updated++
	}
}
