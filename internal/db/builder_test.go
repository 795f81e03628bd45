package db

import "testing"

func TestSchemaBuilder_Simple(t *testing.T) {
	s := NewSchema("articles").
		Prefix("article:").
		Tag("status", "category").
		Numeric("price").
		Text("title").
		MustBuild()

	if s.Name != "articles" {
		t.Errorf("name = %q, want articles", s.Name)
	}
	if s.PrimaryKey != "id" {
		t.Errorf("primary key = %q, want id", s.PrimaryKey)
	}
	if s.KeyPrefix != "article:" {
		t.Errorf("prefix = %q, want article:", s.KeyPrefix)
	}
	if s.FieldType("price") != FieldNumeric {
		t.Errorf("price = %v, want NUMERIC", s.FieldType("price"))
	}
	if s.FieldType("title") != FieldText {
		t.Errorf("title = %v, want TEXT", s.FieldType("title"))
	}
	if s.FieldType("unknown") != FieldTag {
		t.Errorf("unknown = %v, want TAG", s.FieldType("unknown"))
	}
	want := "articles PREFIX article: SCHEMA category TAG price NUMERIC status TAG title TEXT"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSchemaBuilder_Invalid(t *testing.T) {
	tests := []struct {
		name string
		b    *SchemaBuilder
	}{
		{"empty name", NewSchema("")},
		{"bad name", NewSchema("bad name")},
		{"bad field", NewSchema("idx").Tag("bad field")},
		{"bad pk", NewSchema("idx").PrimaryKey("a b")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.b.Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSchemaBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewSchema("").MustBuild()
}

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		in      string
		want    FieldType
		wantErr bool
	}{
		{"tag", FieldTag, false},
		{"", FieldTag, false},
		{"NUMERIC", FieldNumeric, false},
		{"text", FieldText, false},
		{"vector", FieldTag, true},
	}
	for _, tc := range tests {
		got, err := ParseFieldType(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFieldType(%q) err = %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseFieldType(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"articles", true},
		{"ftq:articles:idx", true},
		{"a-b_c", true},
		{"", false},
		{"a b", false},
		{"a@b", false},
	}
	for _, tc := range tests {
		if got := IsValidIdentifier(tc.in); got != tc.want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
