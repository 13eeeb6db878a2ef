package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stemsi/sherlock/internal/config"
	"github.com/stemsi/sherlock/internal/csvstore"
	"github.com/stemsi/sherlock/internal/display"
	"github.com/stemsi/sherlock/internal/fallback"
	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/repository"
	"github.com/stemsi/sherlock/internal/search"
)

// User-facing notes attached to results.
const (
	MessageCSV      = "Database search unavailable. Results served from CSV data."
	MessageFallback = "Using fallback student data. Database search unavailable."
	HintNoMatch     = "No student found. Try using enrollment number or full name."
)

var (
	// ErrStudentNotFound is returned by Profile when no record matches.
	ErrStudentNotFound = errors.New("student not found")
	// ErrAmbiguousMatch is returned by Profile when more than one record matches.
	ErrAmbiguousMatch = errors.New("more than one student matches")
	// ErrMissingIdentifier is returned by Profile without any identifier.
	ErrMissingIdentifier = errors.New("an identifier is required")
)

// RecordStore is the relational record source. Page returns the matching
// total and one page of rows from a single snapshot.
type RecordStore interface {
	Page(ctx context.Context, filter repository.StudentFilter, skip, limit int, orderBy []string) (int, []model.Student, error)
}

// DocumentStore is the CSV record source.
type DocumentStore interface {
	Read(ctx context.Context) (*csvstore.Document, error)
}

// FallbackStore is the built-in record source. It cannot fail.
type FallbackStore interface {
	Records() []model.Student
}

// StudentService resolves searches against the database, then the CSV
// export, then the built-in roster. Each source is tried at most once per
// call and a failure moves on to the next one.
type StudentService struct {
	records  RecordStore
	docs     DocumentStore
	fallback FallbackStore
	cache    ResultCache
	policy   search.Policy
	log      zerolog.Logger
}

// NewStudentService creates a new StudentService. A nil fallback store is
// replaced by the built-in roster; cache may be nil.
func NewStudentService(
	records RecordStore,
	docs DocumentStore,
	fb FallbackStore,
	cache ResultCache,
	policy search.Policy,
	log zerolog.Logger,
) *StudentService {
	if fb == nil {
		fb = fallback.NewStore()
	}
	if policy == "" {
		policy = search.PolicyAny
	}
	return &StudentService{
		records:  records,
		docs:     docs,
		fallback: fb,
		cache:    cache,
		policy:   policy,
		log:      log.With().Str("component", "student_service").Logger(),
	}
}

// lookup describes one resolution: the database filter and its in-memory
// equivalent for the other sources.
type lookup struct {
	filter   repository.StudentFilter
	match    func([]model.Student) []model.Student
	cacheKey string
	page     int
	limit    int
}

// Search finds records matching the free-text query and surname filter.
// Empty input returns an empty page without touching any source.
func (s *StudentService) Search(ctx context.Context, q, surname string, page, limit int) (*model.SearchResult, error) {
	page, limit = search.Window(page, limit, search.DefaultSearchLimit)
	query := search.NewQuery(q, surname, s.policy)
	if query.Empty() {
		return assemble(nil, 0, page, limit, ""), nil
	}

	return s.resolve(ctx, lookup{
		filter:   repository.StudentFilter{Query: query},
		match:    func(all []model.Student) []model.Student { return search.Filter(all, query) },
		cacheKey: config.CacheKey.SearchKey(query.String(), page, limit),
		page:     page,
		limit:    limit,
	})
}

// List pages through records equal to every given identifier filter. No
// filters lists everything.
func (s *StudentService) List(ctx context.Context, filters map[string]string, page, limit int) (*model.SearchResult, error) {
	page, limit = search.Window(page, limit, search.DefaultListLimit)
	for key := range filters {
		if _, ok := model.FieldByKey(key); !ok {
			return nil, fmt.Errorf("filter on %q: %w", key, repository.ErrUnknownField)
		}
	}

	return s.resolve(ctx, lookup{
		filter:   repository.StudentFilter{Equals: filters},
		match:    func(all []model.Student) []model.Student { return search.FilterEqual(all, filters) },
		cacheKey: config.CacheKey.ListKey(filterKey(filters), page, limit),
		page:     page,
		limit:    limit,
	})
}

// Profile resolves exactly one record by identifier and lays it out for display.
func (s *StudentService) Profile(ctx context.Context, filters map[string]string) (*model.ProfileResult, error) {
	if len(filters) == 0 {
		return nil, ErrMissingIdentifier
	}
	res, err := s.List(ctx, filters, 1, 2)
	if err != nil {
		return nil, err
	}
	switch {
	case res.Total == 0:
		return nil, ErrStudentNotFound
	case res.Total > 1:
		return nil, ErrAmbiguousMatch
	}

	student := res.Data[0]
	return &model.ProfileResult{
		Student:  student,
		Sections: display.BuildProfile(&student),
		Source:   res.Source,
		Degraded: res.Degraded,
	}, nil
}

func (s *StudentService) resolve(ctx context.Context, l lookup) (*model.SearchResult, error) {
	if res, ok := s.cached(ctx, l.cacheKey); ok {
		return res, nil
	}

	// TryDatabase
	res, err := s.fromDatabase(ctx, l)
	if err == nil {
		s.store(ctx, l.cacheKey, res)
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	s.logSourceFailure(err, model.SourceDatabase)

	// TryCsv
	res, err = s.fromDocument(ctx, l)
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	s.logSourceFailure(err, model.SourceCSV)

	// UseFallback
	matched := l.match(s.fallback.Records())
	return assemble(search.Paginate(matched, l.page, l.limit), len(matched), l.page, l.limit, model.SourceFallback), nil
}

func (s *StudentService) fromDatabase(ctx context.Context, l lookup) (*model.SearchResult, error) {
	if s.records == nil {
		return nil, repository.ErrNoDatabase
	}
	total, rows, err := s.records.Page(ctx, l.filter, search.Offset(l.page, l.limit), l.limit, repository.DefaultOrder)
	if err != nil {
		return nil, err
	}
	return assemble(rows, total, l.page, l.limit, model.SourceDatabase), nil
}

func (s *StudentService) fromDocument(ctx context.Context, l lookup) (*model.SearchResult, error) {
	if s.docs == nil {
		return nil, csvstore.ErrNotFound
	}
	doc, err := s.docs.Read(ctx)
	if err != nil {
		return nil, err
	}
	matched := l.match(doc.Records())
	return assemble(search.Paginate(matched, l.page, l.limit), len(matched), l.page, l.limit, model.SourceCSV), nil
}

func (s *StudentService) logSourceFailure(err error, source model.Source) {
	ev := s.log.Warn()
	if errors.Is(err, repository.ErrNoDatabase) || errors.Is(err, csvstore.ErrNotFound) {
		ev = s.log.Debug()
	}
	ev.Err(err).Str("source", string(source)).Msg("record source unavailable, falling back")
}

func (s *StudentService) cached(ctx context.Context, key string) (*model.SearchResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	res, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("search cache read failed")
		return nil, false
	}
	return res, ok
}

func (s *StudentService) store(ctx context.Context, key string, res *model.SearchResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, res); err != nil {
		s.log.Warn().Err(err).Msg("search cache write failed")
	}
}

// assemble builds a result page. data is never nil in the output.
func assemble(data []model.Student, total, page, limit int, source model.Source) *model.SearchResult {
	if data == nil {
		data = []model.Student{}
	}
	res := &model.SearchResult{
		Total:     total,
		Page:      page,
		Limit:     limit,
		Data:      data,
		Source:    source,
		Selection: search.Selection(total),
	}
	switch source {
	case model.SourceCSV:
		res.Degraded = true
		res.Message = MessageCSV
	case model.SourceFallback:
		res.Degraded = true
		res.Message = MessageFallback
	}
	if total == 0 && source != "" {
		res.Hint = HintNoMatch
	}
	return res
}

func filterKey(filters map[string]string) string {
	parts := make([]string, 0, len(filters))
	for _, k := range slices.Sorted(maps.Keys(filters)) {
		parts = append(parts, k+"="+filters[k])
	}
	return strings.Join(parts, "&")
}
