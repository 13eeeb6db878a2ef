package search

import (
	"cmp"
	"slices"

	"github.com/stemsi/sherlock/internal/model"
)

// Filter returns the records matching q, ordered by full name then id. The
// input slice is not modified.
func Filter(records []model.Student, q Query) []model.Student {
	out := make([]model.Student, 0)
	if q.Empty() {
		return out
	}
	for i := range records {
		if q.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	Sort(out)
	return out
}

// FilterEqual returns the records whose canonical fields equal every value
// in filters, ordered like Filter. Unknown keys match nothing. An empty
// filter set keeps every record.
func FilterEqual(records []model.Student, filters map[string]string) []model.Student {
	out := make([]model.Student, 0, len(records))
	for i := range records {
		if equalAll(&records[i], filters) {
			out = append(out, records[i])
		}
	}
	Sort(out)
	return out
}

func equalAll(s *model.Student, filters map[string]string) bool {
	for key, want := range filters {
		f, ok := model.FieldByKey(key)
		if !ok || f.Text(s) != want {
			return false
		}
	}
	return true
}

// Sort orders records by full name, then id. Equal keys keep input order.
func Sort(records []model.Student) {
	slices.SortStableFunc(records, func(a, b model.Student) int {
		return cmp.Or(cmp.Compare(a.FullName, b.FullName), cmp.Compare(a.ID, b.ID))
	})
}
