// Package fallback serves the built-in demo roster used when every other
// record source is unavailable.
package fallback

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/normalize"
)

//go:embed students.yaml
var rosterYAML []byte

var roster = mustLoad(rosterYAML)

// Store is the always-available record source.
type Store struct{}

// NewStore returns the built-in roster source.
func NewStore() *Store { return &Store{} }

// Records returns a fresh copy of the demo roster. It never fails.
func (Store) Records() []model.Student {
	return Records()
}

// Records returns a fresh copy of the demo roster.
func Records() []model.Student {
	return slices.Clone(roster)
}

func mustLoad(data []byte) []model.Student {
	records, err := load(data)
	if err != nil {
		panic(fmt.Sprintf("fallback: %v", err))
	}
	return records
}

func load(data []byte) ([]model.Student, error) {
	var rows []map[string]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}

	out := make([]model.Student, 0, len(rows))
	for _, row := range rows {
		s := normalize.Normalize(normalize.Raw(row), model.SourceFallback)
		if id, ok := row["id"].(int); ok {
			s.ID = int64(id)
		}
		out = append(out, s)
	}
	return out, nil
}
