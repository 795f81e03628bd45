package search

import (
	"context"

	"github.com/kailas-cloud/ftquery/internal/domain/search/order"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
)

// Executor carries the query, sort and page state of one search request and
// runs it. Implementations are not safe for concurrent use; acquire one per
// request. Reset clears sort and page state so a reused executor starts from
// an unpaged, unsorted request.
type Executor interface {
	Reset()
	SetQuery(query string)
	SetSort(field string, ascending bool)
	SetMultiSort(fields []order.Field)
	SetLimit(limit, offset int)
	Search(ctx context.Context) ([]result.Document, error)
	Count(ctx context.Context) (int, error)
}
