package query

import (
	"context"

	"github.com/kailas-cloud/ftquery/internal/domain/search"
	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
)

// Executor is the search engine request a query drives.
type Executor = search.Executor

// Source hands out a fresh executor per logical request.
type Source interface {
	Executor(index string) (Executor, error)
}

// Deleter removes documents by key.
type Deleter interface {
	Del(ctx context.Context, keys ...string) (int, error)
}

// Model binds a query to an index and tells it how to build records.
type Model[T any] struct {
	// Index is the search index the query runs against.
	Index string
	// PrimaryKey is the field holding the record id. Defaults to "id".
	PrimaryKey string
	// KeyPrefix maps a primary key to the document key: KeyPrefix + id.
	KeyPrefix string
	// Hydrate builds a record from a matched row.
	Hydrate func(row result.Row) (T, error)
	// AfterFind runs on every hydrated record, in result order. Optional.
	AfterFind func(ctx context.Context, record T) error
}
