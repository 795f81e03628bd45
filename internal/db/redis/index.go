package redis

import (
	"context"
	"sort"

	"github.com/kailas-cloud/ftquery/internal/db"
)

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// CreateIndexArgs renders schema as FT.CREATE arguments over hashes. The
// primary key is declared as a TAG when the schema does not type it, and
// numeric fields are SORTABLE.
func CreateIndexArgs(schema *db.Schema) []string {
	args := []string{schema.Name, "ON", "HASH"}
	if schema.KeyPrefix != "" {
		args = append(args, "PREFIX", "1", schema.KeyPrefix)
	}
	args = append(args, "SCHEMA")

	names := make([]string, 0, len(schema.Fields)+1)
	for n := range schema.Fields {
		names = append(names, n)
	}
	if _, ok := schema.Fields[schema.PrimaryKey]; !ok && schema.PrimaryKey != "" {
		names = append(names, schema.PrimaryKey)
	}
	sort.Strings(names)

	for _, n := range names {
		t := schema.FieldType(n)
		args = append(args, n, t.String())
		if t == db.FieldNumeric {
			args = append(args, "SORTABLE")
		}
	}
	return args
}
