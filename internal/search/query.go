// Package search decides which student records match a free-text query and
// slices the matched set into pages.
package search

import (
	"fmt"
	"strings"

	"github.com/stemsi/sherlock/internal/model"
)

// Policy is the multi-term match rule.
type Policy string

const (
	// PolicyAny matches when at least one term hits.
	PolicyAny Policy = "any"
	// PolicyHalf matches when at least half of the terms (rounded down,
	// minimum one) hit.
	PolicyHalf Policy = "half"
)

// ParsePolicy reads a policy name. An empty name selects PolicyAny.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyAny:
		return PolicyAny, nil
	case PolicyHalf:
		return PolicyHalf, nil
	}
	return "", fmt.Errorf("unknown match policy %q", name)
}

// Threshold returns how many of n terms must hit for a match.
func (p Policy) Threshold(n int) int {
	if n <= 0 {
		return 0
	}
	if p == PolicyHalf {
		return max(1, n/2)
	}
	return 1
}

// Query is a tokenized search input. Terms are tested against the
// searchable field set; SurnameTerms only against the surname fields.
type Query struct {
	Terms        []string
	SurnameTerms []string
	Policy       Policy
}

// NewQuery tokenizes q and surname into lower-cased, de-duplicated terms.
func NewQuery(q, surname string, policy Policy) Query {
	if policy == "" {
		policy = PolicyAny
	}
	return Query{
		Terms:        Tokenize(q),
		SurnameTerms: Tokenize(surname),
		Policy:       policy,
	}
}

// Tokenize splits s on whitespace into lower-cased terms, keeping the first
// occurrence of each.
func Tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

// Empty reports whether the query has no terms at all. An empty query
// matches nothing.
func (q Query) Empty() bool {
	return len(q.Terms) == 0 && len(q.SurnameTerms) == 0
}

// String renders the query in a stable form usable as a cache key part.
func (q Query) String() string {
	return fmt.Sprintf("%s|%s|%s", strings.Join(q.Terms, " "), strings.Join(q.SurnameTerms, " "), q.Policy)
}

var searchable = model.SearchableFields()

// Matches reports whether s satisfies the query.
func (q Query) Matches(s *model.Student) bool {
	if q.Empty() {
		return false
	}
	if len(q.Terms) > 0 && !q.satisfied(q.Terms, fieldTexts(s, searchable)) {
		return false
	}
	if len(q.SurnameTerms) > 0 && !q.satisfied(q.SurnameTerms, fieldTexts(s, model.SurnameFields)) {
		return false
	}
	return true
}

func (q Query) satisfied(terms, texts []string) bool {
	need := q.Policy.Threshold(len(terms))
	hits := 0
	for _, term := range terms {
		if hit(term, texts) {
			hits++
			if hits >= need {
				return true
			}
		}
	}
	return false
}

func hit(term string, texts []string) bool {
	for _, t := range texts {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}

func fieldTexts(s *model.Student, fields []model.Field) []string {
	texts := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := f.Text(s); v != "" {
			texts = append(texts, strings.ToLower(v))
		}
	}
	return texts
}
