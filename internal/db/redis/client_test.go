package redis

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/ftquery/internal/db"
)

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewStore_Validation(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Error("expected error for empty addrs")
	}
	_, err := NewStore(Config{
		Addrs:   []string{"localhost:6379"},
		Schemas: []*db.Schema{{Name: "bad name"}},
	})
	if err == nil {
		t.Error("expected error for invalid schema")
	}
}

func TestSchema_Unknown(t *testing.T) {
	s := NewStoreForTest(nil, articles())
	if _, err := s.Schema("articles"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Schema("missing"); !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
	if _, err := s.Executor("missing"); !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("Executor: expected ErrIndexNotFound, got %v", err)
	}
}

func TestMaxResults(t *testing.T) {
	if got := maxResults(0); got != DefaultMaxResults {
		t.Errorf("maxResults(0) = %d, want %d", got, DefaultMaxResults)
	}
	if got := maxResults(50); got != 50 {
		t.Errorf("maxResults(50) = %d", got)
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"Unknown Index Name", "unknown index name", true},
		{"NO SUCH INDEX", "no such index", true},
		{"hello world", "world", true},
		{"short", "longer than input", false},
		{"exact", "exact", true},
		{"", "", true},
		{"notempty", "", true},
	}
	for _, tc := range tests {
		got := containsIgnoreCase(tc.s, tc.sub)
		if got != tc.want {
			t.Errorf("containsIgnoreCase(%q, %q) = %v, want %v", tc.s, tc.sub, got, tc.want)
		}
	}
}

func TestDel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "article:1", "article:2")).
		Return(mock.Result(mock.RedisInt64(2)))

	s := NewStoreForTest(c)
	n, err := s.Del(context.Background(), "article:1", "article:2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}
}

func TestDel_NoKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	s := NewStoreForTest(c)
	n, err := s.Del(context.Background())
	if err != nil || n != 0 {
		t.Errorf("Del() = %d, %v; want 0, nil", n, err)
	}
}

func TestDel_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "DEL"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.Del(context.Background(), "article:1")
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestIndexExists_True(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "articles")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("index_name"), mock.RedisString("articles"))))

	s := NewStoreForTest(c)
	exists, err := s.IndexExists(context.Background(), "articles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected true")
	}
}

func TestIndexExists_False(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "articles")).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c)
	exists, err := s.IndexExists(context.Background(), "articles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected false")
	}
}

func TestIndexExists_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "articles")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.IndexExists(context.Background(), "articles")
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestCreateIndexArgs(t *testing.T) {
	got := CreateIndexArgs(articles())
	want := []string{
		"articles", "ON", "HASH", "PREFIX", "1", "article:", "SCHEMA",
		"id", "TAG",
		"price", "NUMERIC", "SORTABLE",
		"status", "TAG",
		"title", "TEXT",
		"type", "TAG",
	}
	if !slices.Equal(got, want) {
		t.Errorf("CreateIndexArgs() =\n%v\nwant\n%v", got, want)
	}

	noPrefix := db.NewSchema("plain").PrimaryKey("sku").Numeric("sku").MustBuild()
	got = CreateIndexArgs(noPrefix)
	want = []string{"plain", "ON", "HASH", "SCHEMA", "sku", "NUMERIC", "SORTABLE"}
	if !slices.Equal(got, want) {
		t.Errorf("CreateIndexArgs(noPrefix) = %v, want %v", got, want)
	}
}

// --- helpers ---

func articles() *db.Schema {
	return db.NewSchema("articles").
		Prefix("article:").
		Tag("status", "type").
		Numeric("price").
		Text("title").
		MustBuild()
}

// isDBError is a test helper for checking wrapped db.Error.
func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
