// Package csvstore reads the student roster from a CSV export on disk.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/normalize"
)

// ErrNotFound is returned when none of the configured paths exists.
var ErrNotFound = errors.New("csvstore: no CSV document found")

// ParseError reports a CSV document that exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csvstore: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Document is a parsed CSV export. Rows are keyed by header.
type Document struct {
	Path   string
	Header []string
	Rows   []normalize.Raw
}

// Records normalizes every row. Ids are the 1-based data row numbers.
func (d *Document) Records() []model.Student {
	out := make([]model.Student, 0, len(d.Rows))
	for i, row := range d.Rows {
		s := normalize.Normalize(row, model.SourceCSV)
		s.ID = int64(i + 1)
		out = append(out, s)
	}
	return out
}

// Store looks for the CSV document at each path in order.
type Store struct {
	Paths []string
}

// NewStore creates a Store over the given candidate paths.
func NewStore(paths []string) *Store {
	return &Store{Paths: paths}
}

// Locate returns the first configured path that is a regular file.
func (s *Store) Locate() (string, error) {
	for _, p := range s.Paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", ErrNotFound
}

// Read locates and parses the CSV document.
func (s *Store) Read(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.Locate()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvstore: open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	doc.Path = path
	return doc, nil
}

// Parse reads a CSV stream whose first record is the header. Quotes are
// handled leniently, rows may have any number of cells, cells are trimmed
// and blank rows are skipped.
func Parse(r io.Reader) (*Document, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty document")
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	doc := &Document{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if row := toRaw(header, rec); row != nil {
			doc.Rows = append(doc.Rows, row)
		}
	}
	return doc, nil
}

// toRaw keys cells by header. A header repeated in the export keeps its
// first non-empty cell. Rows without any value yield nil.
func toRaw(header, rec []string) normalize.Raw {
	row := make(normalize.Raw, len(header))
	blank := true
	for i, cell := range rec {
		if i >= len(header) || header[i] == "" {
			continue
		}
		cell = strings.TrimSpace(cell)
		if cell != "" {
			blank = false
		}
		if prev, ok := row[header[i]].(string); ok && prev != "" {
			continue
		}
		row[header[i]] = cell
	}
	if blank {
		return nil
	}
	return row
}
