package query

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ftquery/internal/domain"
	"github.com/kailas-cloud/ftquery/internal/domain/condition"
	"github.com/kailas-cloud/ftquery/internal/domain/search/order"
	"github.com/kailas-cloud/ftquery/internal/domain/search/page"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
	"github.com/kailas-cloud/ftquery/internal/logger"
)

const defaultPrimaryKey = "id"

// Query assembles a search request from a condition, a sort and a page, runs
// it on an executor and hydrates the matched rows into records of type T.
//
// Builder methods mutate the query and are not safe for concurrent use. Each
// of One, All, Count, Row, Rows, PrimaryKeys and DeleteAll acquires its own
// executor unless one was pinned with Using.
type Query[T any] struct {
	src   Source
	model Model[T]
	exec  Executor

	where   condition.Spec
	orderBy order.Spec
	page    page.Page
}

// New creates a query over model, acquiring executors from src.
func New[T any](src Source, model Model[T]) *Query[T] {
	if model.PrimaryKey == "" {
		model.PrimaryKey = defaultPrimaryKey
	}
	return &Query[T]{src: src, model: model, page: page.New()}
}

// Where replaces the condition.
func (q *Query[T]) Where(spec condition.Spec) *Query[T] {
	q.where = spec
	return q
}

// AndWhere combines the current condition with spec using AND.
func (q *Query[T]) AndWhere(spec condition.Spec) *Query[T] {
	return q.combine(condition.OpAnd, spec)
}

// OrWhere combines the current condition with spec using OR.
func (q *Query[T]) OrWhere(spec condition.Spec) *Query[T] {
	return q.combine(condition.OpOr, spec)
}

// FilterWhere is Where with empty operands removed from spec first.
// A spec that filters down to nothing leaves the condition untouched.
func (q *Query[T]) FilterWhere(spec condition.Spec) *Query[T] {
	if spec = Filter(spec); !spec.IsEmpty() {
		q.Where(spec)
	}
	return q
}

// AndFilterWhere is AndWhere with empty operands removed from spec first.
func (q *Query[T]) AndFilterWhere(spec condition.Spec) *Query[T] {
	if spec = Filter(spec); !spec.IsEmpty() {
		q.AndWhere(spec)
	}
	return q
}

// OrFilterWhere is OrWhere with empty operands removed from spec first.
func (q *Query[T]) OrFilterWhere(spec condition.Spec) *Query[T] {
	if spec = Filter(spec); !spec.IsEmpty() {
		q.OrWhere(spec)
	}
	return q
}

func (q *Query[T]) combine(op string, spec condition.Spec) *Query[T] {
	if q.where.IsEmpty() {
		q.where = spec
		return q
	}
	q.where = condition.Op(op, q.where, spec)
	return q
}

// OrderBy replaces the sort with a single field.
func (q *Query[T]) OrderBy(field string, d order.Direction) *Query[T] {
	q.orderBy = order.Spec{{Name: field, Direction: d}}
	return q
}

// AddOrderBy appends a sort field, or changes its direction if already present.
func (q *Query[T]) AddOrderBy(field string, d order.Direction) *Query[T] {
	q.orderBy = q.orderBy.Set(field, d)
	return q
}

// Limit sets the maximum number of rows. A negative n removes the limit.
func (q *Query[T]) Limit(n int) *Query[T] {
	if n < 0 {
		n = page.Unset
	}
	q.page.Limit = n
	return q
}

// Offset sets the number of rows to skip. It only applies together with a limit.
func (q *Query[T]) Offset(n int) *Query[T] {
	q.page.Offset = n
	return q
}

// Using pins exec for every subsequent operation instead of acquiring one
// from the source. The caller owns exec and must not share it concurrently.
func (q *Query[T]) Using(exec Executor) *Query[T] {
	q.exec = exec
	return q
}

// Compile returns the compiled condition without running anything.
func (q *Query[T]) Compile() (string, error) {
	return condition.Build(q.where)
}

// One returns the first matching record. The limit is pinned to 1 for this
// call only. ok is false when nothing matched.
func (q *Query[T]) One(ctx context.Context) (record T, ok bool, err error) {
	rows, err := q.fetch(ctx, 1)
	if err != nil || len(rows) == 0 {
		return record, false, err
	}
	record, err = q.hydrate(ctx, rows[0])
	if err != nil {
		return record, false, err
	}
	return record, true, nil
}

// All returns every matching record in result order. It never returns a nil
// slice on success.
func (q *Query[T]) All(ctx context.Context) ([]T, error) {
	rows, err := q.fetch(ctx, page.Unset)
	if err != nil {
		return nil, err
	}
	records := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, err := q.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Row is One without hydration: the raw field mapping of the first match, or nil.
func (q *Query[T]) Row(ctx context.Context) (result.Row, error) {
	rows, err := q.fetch(ctx, 1)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// Rows is All without hydration.
func (q *Query[T]) Rows(ctx context.Context) ([]result.Row, error) {
	return q.fetch(ctx, page.Unset)
}

// Count returns the number of matching documents using the engine's count.
func (q *Query[T]) Count(ctx context.Context) (int, error) {
	exec, err := q.executor()
	if err != nil {
		return 0, err
	}
	if err := q.prepare(ctx, exec, page.Unset); err != nil {
		return 0, err
	}
	n, err := exec.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", q.model.Index, err)
	}
	return n, nil
}

// PrimaryKeys returns the primary key of every matching row. Rows without
// the key are skipped.
func (q *Query[T]) PrimaryKeys(ctx context.Context) ([]string, error) {
	rows, err := q.fetch(ctx, page.Unset)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		if v, ok := row.Get(q.model.PrimaryKey); ok && v != "" {
			keys = append(keys, v)
		}
	}
	return keys, nil
}

// DeleteAll deletes every matching document and returns how many were removed.
func (q *Query[T]) DeleteAll(ctx context.Context, del Deleter) (int, error) {
	ids, err := q.PrimaryKeys(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = q.model.KeyPrefix + id
	}
	n, err := del.Del(ctx, keys...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", q.model.Index, err)
	}
	logger.FromContext(ctx).Info("deleted documents",
		zap.String("index", q.model.Index),
		zap.Int("matched", len(keys)),
		zap.Int("deleted", n),
	)
	return n, nil
}

// Exists is not supported by the search engine.
func (q *Query[T]) Exists(context.Context) (bool, error) {
	return false, domain.NewUnsupported("exists")
}

// FindFor loads related records, which the search engine cannot do.
func (q *Query[T]) FindFor(string, any) error {
	return domain.NewUnsupported("find for relation")
}

// Via declares a pivot relation, which the search engine cannot do.
func (q *Query[T]) Via(string) error {
	return domain.NewUnsupported("via")
}

// UpdateAll is not supported by the search engine.
func (q *Query[T]) UpdateAll(context.Context, map[string]string) (int, error) {
	return 0, domain.NewUnsupported("update all")
}

func (q *Query[T]) fetch(ctx context.Context, limit int) ([]result.Row, error) {
	exec, err := q.executor()
	if err != nil {
		return nil, err
	}
	if err := q.prepare(ctx, exec, limit); err != nil {
		return nil, err
	}
	docs, err := exec.Search(ctx)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", q.model.Index, err)
	}
	return result.Rows(docs), nil
}

func (q *Query[T]) executor() (Executor, error) {
	if q.exec != nil {
		return q.exec, nil
	}
	exec, err := q.src.Executor(q.model.Index)
	if err != nil {
		return nil, fmt.Errorf("acquire executor for %s: %w", q.model.Index, err)
	}
	return exec, nil
}

// prepare resets exec and pushes page, sort and condition into it, so a
// pinned executor carries nothing over from the previous operation. The
// condition is compiled first so a compile error leaves exec untouched. A non-negative
// limitOverride replaces the configured limit for this request only.
func (q *Query[T]) prepare(ctx context.Context, exec Executor, limitOverride int) error {
	compiled, err := condition.Build(q.where)
	if err != nil {
		return fmt.Errorf("compile condition: %w", err)
	}

	exec.Reset()
	p := q.page
	if limitOverride >= 0 {
		p.Limit = limitOverride
	}
	if p.HasLimit() {
		exec.SetLimit(p.Limit, p.EffectiveOffset())
	}

	switch len(q.orderBy) {
	case 0:
	case 1:
		exec.SetSort(q.orderBy[0].Name, q.orderBy[0].Direction.Ascending())
	default:
		exec.SetMultiSort(q.orderBy)
	}

	exec.SetQuery(compiled)

	logger.FromContext(ctx).Debug("prepared query",
		zap.String("index", q.model.Index),
		zap.String("query", compiled),
		zap.Strings("sort_fields", q.orderBy.Names()),
		zap.Int("limit", p.Limit),
		zap.Int("offset", p.EffectiveOffset()),
	)
	return nil
}

func (q *Query[T]) hydrate(ctx context.Context, row result.Row) (T, error) {
	var zero T
	if q.model.Hydrate == nil {
		return zero, fmt.Errorf("%w: no hydrator for %s", domain.ErrInvalidRequest, q.model.Index)
	}
	rec, err := q.model.Hydrate(row)
	if err != nil {
		return zero, fmt.Errorf("hydrate %s row: %w", q.model.Index, err)
	}
	if q.model.AfterFind != nil {
		if err := q.model.AfterFind(ctx, rec); err != nil {
			return zero, fmt.Errorf("after find: %w", err)
		}
	}
	return rec, nil
}
