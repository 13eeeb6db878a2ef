package repository

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/sherlock/internal/model"
	"github.com/stemsi/sherlock/internal/normalize"
	"github.com/stemsi/sherlock/internal/search"
)

const studentsTable = "students"

var (
	// ErrNoDatabase is returned by every method when no pool is configured.
	ErrNoDatabase = errors.New("database not configured")
	// ErrUnknownField is returned for filters or orderings on a key outside the registry.
	ErrUnknownField = errors.New("unknown student field")
	// ErrInvalidWindow is returned for a negative offset.
	ErrInvalidWindow = errors.New("invalid page window")
	// ErrDuplicateEnrollment is returned when an insert collides with an existing enrollment number.
	ErrDuplicateEnrollment = errors.New("student with this enrollment number already exists")
)

// DefaultOrder sorts by full name with id as the tie-break.
var DefaultOrder = []string{"fullName", "id"}

// StudentFilter combines a free-text query with exact-match filters keyed by
// canonical field. Both parts are ANDed.
type StudentFilter struct {
	Query  search.Query
	Equals map[string]string
}

// StudentRepository reads and writes the students table.
type StudentRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository. A nil pool yields a
// repository whose every call fails with ErrNoDatabase.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// acquire takes a dedicated connection for the duration of one call.
func (r *StudentRepository) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return conn, nil
}

// Ping checks that the database answers.
func (r *StudentRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	return r.pool.Ping(ctx)
}

// Count returns the number of rows matching filter.
func (r *StudentRepository) Count(ctx context.Context, filter StudentFilter) (int, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	return r.count(ctx, conn, filter)
}

// CountAll returns the number of rows in the table.
func (r *StudentRepository) CountAll(ctx context.Context) (int, error) {
	return r.Count(ctx, StudentFilter{})
}

// FindMany returns one page of rows matching filter, ordered by the given
// canonical keys.
func (r *StudentRepository) FindMany(ctx context.Context, filter StudentFilter, skip, limit int, orderBy []string) ([]model.Student, error) {
	query, args, err := r.findSQL(filter, skip, limit, orderBy)
	if err != nil {
		return nil, err
	}

	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return findRows(ctx, conn, query, args)
}

// Page returns the total of rows matching filter together with one page of
// them. Both queries run on one connection inside a read-only repeatable
// read transaction, so they see the same snapshot.
func (r *StudentRepository) Page(ctx context.Context, filter StudentFilter, skip, limit int, orderBy []string) (int, []model.Student, error) {
	query, args, err := r.findSQL(filter, skip, limit, orderBy)
	if err != nil {
		return 0, nil, err
	}

	conn, err := r.acquire(ctx)
	if err != nil {
		return 0, nil, err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return 0, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	total, err := r.count(ctx, tx, filter)
	if err != nil {
		return 0, nil, err
	}
	students, err := findRows(ctx, tx, query, args)
	if err != nil {
		return 0, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, nil, fmt.Errorf("commit transaction: %w", err)
	}
	return total, students, nil
}

// querier is satisfied by both a pooled connection and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *StudentRepository) count(ctx context.Context, q querier, filter StudentFilter) (int, error) {
	query, args, err := r.countSQL(filter)
	if err != nil {
		return 0, err
	}
	var total int
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}

func findRows(ctx context.Context, q querier, query string, args []any) ([]model.Student, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	raws, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("scan students: %w", err)
	}

	students := make([]model.Student, 0, len(raws))
	for _, raw := range raws {
		students = append(students, normalize.Normalize(raw, model.SourceDatabase))
	}
	return students, nil
}

// FindByField returns the number of rows whose field key equals value and
// the first limit of them.
func (r *StudentRepository) FindByField(ctx context.Context, key, value string, limit int) (int, []model.Student, error) {
	return r.Page(ctx, StudentFilter{Equals: map[string]string{key: value}}, 0, limit, DefaultOrder)
}

// Upsert updates the row sharing s's enrollment number or full name, or
// inserts s when there is none. The placeholder name never matches an
// existing row. It reports whether a row was created.
func (r *StudentRepository) Upsert(ctx context.Context, s *model.Student) (bool, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	id, found, err := r.existingID(ctx, conn, s)
	if err != nil {
		return false, err
	}

	if found {
		update := r.sb.Update(studentsTable).Where(squirrel.Eq{"id": id}).Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP"))
		for _, f := range model.Fields {
			update = update.Set(f.Column, f.Value(s))
		}
		query, args, err := update.ToSql()
		if err != nil {
			return false, fmt.Errorf("build update: %w", err)
		}
		if _, err := conn.Exec(ctx, query, args...); err != nil {
			return false, fmt.Errorf("update student %d: %w", id, err)
		}
		s.ID = id
		return false, nil
	}

	cols := make([]string, 0, len(model.Fields))
	vals := make([]any, 0, len(model.Fields))
	for _, f := range model.Fields {
		cols = append(cols, f.Column)
		vals = append(vals, f.Value(s))
	}
	query, args, err := r.sb.Insert(studentsTable).Columns(cols...).Values(vals...).Suffix("RETURNING id").ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert: %w", err)
	}
	if err := conn.QueryRow(ctx, query, args...).Scan(&s.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, ErrDuplicateEnrollment
		}
		return false, fmt.Errorf("insert student: %w", err)
	}
	return true, nil
}

func (r *StudentRepository) existingID(ctx context.Context, conn *pgxpool.Conn, s *model.Student) (int64, bool, error) {
	match := matchExisting(s)
	if match == nil {
		return 0, false, nil
	}
	query, args, err := r.sb.Select("id").From(studentsTable).Where(match).OrderBy("id ASC").Limit(1).ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build lookup: %w", err)
	}

	var id int64
	err = conn.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup student: %w", err)
	}
	return id, true, nil
}

// matchExisting builds the identity predicate used by Upsert, or nil when
// s carries nothing to match on.
func matchExisting(s *model.Student) squirrel.Sqlizer {
	var or squirrel.Or
	if s.EnrollmentNumber != "" {
		or = append(or, squirrel.Eq{"enrollment_number": s.EnrollmentNumber})
	}
	if s.FullName != "" && s.FullName != normalize.PlaceholderName {
		or = append(or, squirrel.Eq{"full_name": s.FullName})
	}
	if len(or) == 0 {
		return nil
	}
	return or
}

// ─── SQL building ──────────────────────────────────────────────────────────

func (r *StudentRepository) countSQL(filter StudentFilter) (string, []any, error) {
	where, err := filterPredicate(filter)
	if err != nil {
		return "", nil, err
	}
	q := r.sb.Select("COUNT(*)").From(studentsTable)
	if len(where) > 0 {
		q = q.Where(where)
	}
	return q.ToSql()
}

func (r *StudentRepository) findSQL(filter StudentFilter, skip, limit int, orderBy []string) (string, []any, error) {
	if skip < 0 {
		return "", nil, fmt.Errorf("offset %d: %w", skip, ErrInvalidWindow)
	}
	where, err := filterPredicate(filter)
	if err != nil {
		return "", nil, err
	}
	order, err := orderClauses(orderBy)
	if err != nil {
		return "", nil, err
	}

	q := r.sb.Select(selectColumns()...).From(studentsTable).OrderBy(order...)
	if len(where) > 0 {
		q = q.Where(where)
	}
	if skip > 0 {
		q = q.Offset(uint64(skip))
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return q.ToSql()
}

func selectColumns() []string {
	cols := make([]string, 0, len(model.Fields)+1)
	cols = append(cols, "id")
	for _, f := range model.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

func orderClauses(keys []string) ([]string, error) {
	if len(keys) == 0 {
		keys = DefaultOrder
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "id" {
			out = append(out, "id ASC")
			continue
		}
		f, ok := model.FieldByKey(key)
		if !ok {
			return nil, fmt.Errorf("order by %q: %w", key, ErrUnknownField)
		}
		if f.Kind == model.KindString {
			// Byte order, matching search.Sort.
			out = append(out, f.Column+` COLLATE "C" ASC`)
			continue
		}
		out = append(out, f.Column+" ASC")
	}
	return out, nil
}

// filterPredicate translates a StudentFilter into a WHERE clause with the
// same semantics as search.Query.Matches.
func filterPredicate(filter StudentFilter) (squirrel.And, error) {
	and := squirrel.And{}
	for _, key := range slices.Sorted(maps.Keys(filter.Equals)) {
		f, ok := model.FieldByKey(key)
		if !ok {
			return nil, fmt.Errorf("filter on %q: %w", key, ErrUnknownField)
		}
		and = append(and, squirrel.Eq{f.Column: filter.Equals[key]})
	}

	q := filter.Query
	if len(q.Terms) > 0 {
		pred, err := termsPredicate(q.Terms, model.SearchableFields(), q.Policy)
		if err != nil {
			return nil, err
		}
		and = append(and, pred)
	}
	if len(q.SurnameTerms) > 0 {
		pred, err := termsPredicate(q.SurnameTerms, model.SurnameFields, q.Policy)
		if err != nil {
			return nil, err
		}
		and = append(and, pred)
	}
	return and, nil
}

// termsPredicate requires policy.Threshold(len(terms)) terms to hit any of
// the fields.
func termsPredicate(terms []string, fields []model.Field, policy search.Policy) (squirrel.Sqlizer, error) {
	perTerm := make([]squirrel.Sqlizer, 0, len(terms))
	for _, term := range terms {
		pattern := "%" + escapeLike(term) + "%"
		or := make(squirrel.Or, 0, len(fields))
		for _, f := range fields {
			or = append(or, squirrel.Expr(columnText(f)+" ILIKE ?", pattern))
		}
		perTerm = append(perTerm, or)
	}

	need := policy.Threshold(len(terms))
	if need <= 1 {
		return squirrel.Or(perTerm), nil
	}

	parts := make([]string, 0, len(perTerm))
	var args []any
	for _, p := range perTerm {
		sql, a, err := p.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build term predicate: %w", err)
		}
		parts = append(parts, "CASE WHEN "+sql+" THEN 1 ELSE 0 END")
		args = append(args, a...)
	}
	args = append(args, need)
	return squirrel.Expr("("+strings.Join(parts, " + ")+") >= ?", args...), nil
}

func columnText(f model.Field) string {
	if f.Kind == model.KindString {
		return f.Column
	}
	return "CAST(" + f.Column + " AS TEXT)"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
