package search

import (
	"math"

	"github.com/stemsi/sherlock/internal/model"
)

const (
	// DefaultSearchLimit is the page size of the search endpoint.
	DefaultSearchLimit = 50
	// DefaultListLimit is the page size of the listing endpoint.
	DefaultListLimit = 10
	// MaxLimit caps any requested page size.
	MaxLimit = 500
)

// Window normalizes paging input: page below 1 becomes 1, a missing limit
// becomes def and oversized limits are capped at MaxLimit. Page is capped so
// that its offset fits in an int.
func Window(page, limit, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = max(def, 1)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page-1 > math.MaxInt/limit {
		page = math.MaxInt/limit + 1
	}
	return page, limit
}

// Offset returns the number of records before page. It saturates at
// math.MaxInt instead of wrapping.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Paginate returns the page'th slice of size limit. Pages past the end yield
// an empty slice.
func Paginate(records []model.Student, page, limit int) []model.Student {
	if page < 1 || limit < 1 {
		return []model.Student{}
	}
	skip := Offset(page, limit)
	if skip >= len(records) {
		return []model.Student{}
	}
	end := skip + min(limit, len(records)-skip)
	out := make([]model.Student, end-skip)
	copy(out, records[skip:end])
	return out
}

// Selection tells the caller whether to auto-select or disambiguate.
func Selection(total int) model.Selection {
	switch {
	case total == 1:
		return model.SelectionSingle
	case total > 1:
		return model.SelectionMultiple
	}
	return model.SelectionNone
}
