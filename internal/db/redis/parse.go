package redis

import (
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/ftquery/internal/domain/search/result"
)

// parseSearchResult reads an FT.SEARCH reply.
// 2-stride: [total, key1, fields1, key2, fields2, ...]
func parseSearchResult(raw []rueidis.RedisMessage) ([]result.Document, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	docs := make([]result.Document, 0, (len(raw)-1)/2)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		docs = append(docs, result.Document{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}
	return docs, nil
}

// parseAggregateResult reads an FT.AGGREGATE reply. Rows carry no key.
// [total, fields1, fields2, ...]
func parseAggregateResult(raw []rueidis.RedisMessage) ([]result.Document, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if _, err := raw[0].AsInt64(); err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	docs := make([]result.Document, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		fields, err := raw[i].ToArray()
		if err != nil {
			continue
		}
		docs = append(docs, result.Document{Fields: parseFieldPairs(fields)})
	}
	return docs, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}
