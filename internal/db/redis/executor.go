package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ftquery/internal/db"
	"github.com/kailas-cloud/ftquery/internal/domain/search/order"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
	"github.com/kailas-cloud/ftquery/internal/logger"
	"github.com/kailas-cloud/ftquery/internal/metrics"
)

// Compile-time check: Executor implements db.Executor.
var _ db.Executor = (*Executor)(nil)

// Executor runs one search request against an FT index. It holds mutable
// request state and must not be shared between concurrent requests.
type Executor struct {
	store  *Store
	schema *db.Schema

	query    string
	sort     []order.Field
	hasLimit bool
	limit    int
	offset   int
}

// Executor returns a fresh executor bound to index.
func (s *Store) Executor(index string) (db.Executor, error) {
	schema, err := s.Schema(index)
	if err != nil {
		return nil, err
	}
	return &Executor{store: s, schema: schema}, nil
}

// Reset drops the query, sort and page window.
func (e *Executor) Reset() {
	e.query = ""
	e.sort = nil
	e.hasLimit = false
	e.limit, e.offset = 0, 0
}

// SetQuery sets the compiled condition to search for.
func (e *Executor) SetQuery(query string) { e.query = query }

// SetSort sorts by a single field.
func (e *Executor) SetSort(field string, ascending bool) {
	dir := order.Asc
	if !ascending {
		dir = order.Desc
	}
	e.sort = []order.Field{{Name: field, Direction: dir}}
}

// SetMultiSort sorts by several fields, earlier fields first.
func (e *Executor) SetMultiSort(fields []order.Field) {
	e.sort = append([]order.Field(nil), fields...)
}

// SetLimit sets the page window.
func (e *Executor) SetLimit(limit, offset int) {
	e.hasLimit = true
	e.limit = limit
	e.offset = max(offset, 0)
}

// Search runs the request. A single sort field uses FT.SEARCH SORTBY;
// several fields need FT.AGGREGATE because FT.SEARCH sorts by one field only.
func (e *Executor) Search(ctx context.Context) ([]result.Document, error) {
	query, err := translate(e.query, e.schema)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	if len(e.sort) > 1 {
		return e.aggregate(ctx, query)
	}

	args := []string{e.schema.Name, query}
	if len(e.sort) == 1 {
		args = append(args, "SORTBY", e.sort[0].Name, sortKeyword(e.sort[0].Direction))
	}
	offset, limit := e.window()
	args = append(args, "LIMIT", strconv.Itoa(offset), strconv.Itoa(limit), "DIALECT", "2")

	raw, err := e.run(ctx, db.OpSearch, args)
	if err != nil {
		return nil, err
	}
	docs, err := parseSearchResult(raw)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	metrics.EngineDocumentsReturned.WithLabelValues(db.OpSearch).Observe(float64(len(docs)))
	return docs, nil
}

func (e *Executor) aggregate(ctx context.Context, query string) ([]result.Document, error) {
	args := []string{e.schema.Name, query, "LOAD", "*", "SORTBY", strconv.Itoa(len(e.sort) * 2)}
	for _, f := range e.sort {
		args = append(args, "@"+f.Name, sortKeyword(f.Direction))
	}
	offset, limit := e.window()
	args = append(args, "LIMIT", strconv.Itoa(offset), strconv.Itoa(limit), "DIALECT", "2")

	raw, err := e.run(ctx, db.OpAggregate, args)
	if err != nil {
		return nil, err
	}
	docs, err := parseAggregateResult(raw)
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}
	metrics.EngineDocumentsReturned.WithLabelValues(db.OpAggregate).Observe(float64(len(docs)))
	return docs, nil
}

// Count returns the number of documents matching the query via FT.SEARCH LIMIT 0 0.
func (e *Executor) Count(ctx context.Context) (int, error) {
	query, err := translate(e.query, e.schema)
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}

	raw, err := e.run(ctx, db.OpSearch, []string{e.schema.Name, query, "LIMIT", "0", "0", "DIALECT", "2"})
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

func (e *Executor) window() (offset, limit int) {
	if !e.hasLimit {
		return 0, e.store.maxResults
	}
	return e.offset, e.limit
}

func (e *Executor) run(ctx context.Context, op string, args []string) ([]rueidis.RedisMessage, error) {
	log := logger.FromContext(ctx).With(
		zap.String("query_id", uuid.NewString()),
		zap.String("command", op),
	)
	log.Debug("engine command", zap.Strings("args", args))

	start := time.Now()
	cmd := e.store.b().Arbitrary(op).Args(args...).Build()
	raw, err := e.store.do(ctx, cmd).ToArray()
	elapsed := time.Since(start)
	metrics.ObserveEngine(op, elapsed.Seconds(), err)

	if err != nil {
		log.Warn("engine command failed", zap.Error(err), zap.Duration("latency", elapsed))
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			err = fmt.Errorf("%w: %w", db.ErrIndexNotFound, err)
		}
		return nil, &db.Error{Op: op, Err: err}
	}
	log.Debug("engine command done", zap.Duration("latency", elapsed))
	return raw, nil
}

func sortKeyword(d order.Direction) string {
	if d.Ascending() {
		return "ASC"
	}
	return "DESC"
}
