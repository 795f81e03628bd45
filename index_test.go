package ftquery

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"
)

func TestNewIndex_Unregistered(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := newTestClient(t, mock.NewClient(ctrl))

	_, err := NewIndex[article](client, "missing")
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestIndex_FindAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.SEARCH", "articles", "(@status:{1} | @status:{2})",
			"LIMIT", "0", "10000", "DIALECT", "2",
		)).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("article:1"),
			mock.RedisArray(
				mock.RedisString("id"), mock.RedisString("1"),
				mock.RedisString("title"), mock.RedisString("Go"),
				mock.RedisString("status"), mock.RedisString("1"),
				mock.RedisString("price"), mock.RedisString("9.5"),
			),
			mock.RedisString("article:2"),
			mock.RedisArray(
				mock.RedisString("id"), mock.RedisString("2"),
				mock.RedisString("status"), mock.RedisString("2"),
			),
		)))

	idx, err := NewIndex[*article](newTestClient(t, c), "articles")
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	var seen []string
	idx.AfterFind(func(_ context.Context, a *article) error {
		seen = append(seen, a.ID)
		return nil
	})

	list, err := idx.Find().Where(In("status", Values(1, 2))).All(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Go" || list[0].Price != 9.5 || list[1].Status != 2 {
		t.Errorf("list = %+v, %+v", list[0], list[1])
	}
	if strings.Join(seen, ",") != "1,2" {
		t.Errorf("after find order = %v", seen)
	}
}

func TestIndex_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.SEARCH", "articles", "@id:{42}", "LIMIT", "0", "1", "DIALECT", "2",
		)).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	idx, err := NewIndex[article](newTestClient(t, c), "articles")
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	_, ok, err := idx.Get(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no match")
	}
}

func TestIndex_Count(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "articles", "-@status:{0}", "LIMIT", "0", "0", "DIALECT", "2")).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(3))))

	idx, err := NewIndex[article](newTestClient(t, c), "articles")
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	n, err := idx.Count(context.Background(), Not(Hash(Field("status", Lit(0)))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestIndex_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match(
				"FT.SEARCH", "articles", "@status:{0}", "LIMIT", "0", "10000", "DIALECT", "2",
			)).
			Return(mock.Result(mock.RedisArray(
				mock.RedisInt64(2),
				mock.RedisString("article:3"),
				mock.RedisArray(mock.RedisString("id"), mock.RedisString("3")),
				mock.RedisString("article:5"),
				mock.RedisArray(mock.RedisString("id"), mock.RedisString("5")),
			))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("DEL", "article:3", "article:5")).
			Return(mock.Result(mock.RedisInt64(2))),
	)

	idx, err := NewIndex[article](newTestClient(t, c), "articles")
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	n, err := idx.Delete(context.Background(), Hash(Field("status", Lit(0))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
}
