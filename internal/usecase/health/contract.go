package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexVerifier checks that the configured search indexes exist.
type IndexVerifier interface {
	Verify(ctx context.Context, names []string) error
}
