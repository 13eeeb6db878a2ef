// Package normalize maps raw rows from any record source onto model.Student.
package normalize

import (
	"strings"
	"time"

	"github.com/stemsi/sherlock/internal/model"
)

// PlaceholderName is stored for records that reach ingestion without any name.
const PlaceholderName = "Unknown Student"

// Raw is one unnormalized row keyed by the source's own column names.
type Raw map[string]any

// lookup returns the first candidate key holding a non-empty value.
func (r Raw) lookup(candidates []string) (any, bool) {
	for _, key := range candidates {
		v, ok := r[key]
		if !ok {
			continue
		}
		if _, present := text(v); present {
			return v, true
		}
	}
	return nil, false
}

// Normalize builds a canonical record from a raw row. It never fails:
// unresolved strings stay empty and unparseable dates or numbers stay nil.
func Normalize(raw Raw, source model.Source) model.Student {
	table, ok := Tables[source]
	if !ok {
		table = Tables[model.SourceFallback]
	}

	var s model.Student
	for _, f := range model.Fields {
		v, found := raw.lookup(table.Candidates(f.Key))
		if !found {
			continue
		}
		assign(f, &s, v)
	}

	if source == model.SourceDatabase {
		s.ID = rowID(raw["id"])
	}

	if s.FullName == "" {
		s.FullName = ComposeName(s.FirstName, s.MiddleName, s.LastName)
	}
	return s
}

// ForIngestion prepares a normalized record for storage by filling the
// placeholder name. Search paths must not call it.
func ForIngestion(s model.Student) model.Student {
	if strings.TrimSpace(s.FullName) == "" {
		s.FullName = PlaceholderName
	}
	return s
}

// ComposeName joins the non-empty parts with single spaces.
func ComposeName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func assign(f model.Field, s *model.Student, v any) {
	switch p := f.Ref(s).(type) {
	case *string:
		*p, _ = text(v)
	case **int:
		*p = parseInt(v)
	case **float64:
		*p = parseFloat(v)
	case **time.Time:
		*p = parseDate(v)
	case *bool:
		*p = parseBool(v)
	}
}

func rowID(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	}
	return 0
}
