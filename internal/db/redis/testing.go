package redis

import (
	"github.com/redis/rueidis"

	"github.com/kailas-cloud/ftquery/internal/db"
)

// NewStoreForTest creates a Store with the provided rueidis client (test-only).
func NewStoreForTest(c rueidis.Client, schemas ...*db.Schema) *Store {
	m := make(map[string]*db.Schema, len(schemas))
	for _, s := range schemas {
		m[s.Name] = s
	}
	return &Store{client: c, schemas: m, maxResults: DefaultMaxResults}
}
