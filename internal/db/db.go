package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/ftquery/internal/domain/search"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	Deleter
	IndexManager
	ExecutorSource
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deleter removes documents by key.
type Deleter interface {
	Del(ctx context.Context, keys ...string) (int, error)
}

// IndexManager inspects FT indexes. Indexes are created outside this service.
type IndexManager interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}

// ExecutorSource hands out a fresh executor per logical request.
type ExecutorSource interface {
	Executor(index string) (Executor, error)
}

// Executor is the engine-facing search request; see search.Executor.
type Executor = search.Executor
