package result

import "testing"

func TestRows_SkipsDocumentsWithoutFields(t *testing.T) {
	docs := []Document{
		{Key: "a:1", Fields: map[string]string{"id": "1"}},
		{Key: "a:2"},
		{Key: "a:3", Fields: map[string]string{}},
	}

	rows := Rows(docs)
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if v, ok := rows[0].Get("id"); !ok || v != "1" {
		t.Errorf("rows[0][id] = %q, %v", v, ok)
	}
	if _, ok := rows[1].Get("id"); ok {
		t.Error("rows[1] should be empty")
	}
}

func TestRows_Empty(t *testing.T) {
	rows := Rows(nil)
	if rows == nil || len(rows) != 0 {
		t.Errorf("Rows(nil) = %v, want empty non-nil", rows)
	}
}
