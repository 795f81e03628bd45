package condition

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/kailas-cloud/ftquery/internal/domain"
)

func mustBuild(t *testing.T, spec Spec) string {
	t.Helper()
	got, err := Build(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func TestCompile_Literal(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"title:hello", "title:hello"},
		{42, "42"},
		{int64(-7), "-7"},
		{2.5, "2.5"},
		{true, "true"},
		{"", ""},
		{nil, ""},
	}
	for _, tc := range tests {
		if got := mustBuild(t, Lit(tc.in)); got != tc.want {
			t.Errorf("Build(Lit(%v)) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCompile_EmptyComposite(t *testing.T) {
	if got := mustBuild(t, List()); got != "" {
		t.Errorf("empty list = %q, want empty", got)
	}
	if got := mustBuild(t, Hash()); got != "" {
		t.Errorf("empty hash = %q, want empty", got)
	}
	if got := mustBuild(t, Spec{}); got != "" {
		t.Errorf("zero spec = %q, want empty", got)
	}
}

func TestCompile_And(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"drops empty", And(Lit("a"), Lit(""), Lit("b")), "(a) AND (b)"},
		{"flat chain", And(Lit("a"), Lit("b"), Lit("c")), "(a) AND (b) AND (c)"},
		{"single", And(Lit("a")), "(a)"},
		{"all empty", And(Lit(""), Null(), List()), ""},
		{"no operands", And(), ""},
		{"or", Or(Lit("a"), Lit("b")), "(a) OR (b)"},
		{"lowercase token", Op("or", Lit("a"), Lit("b")), "(a) OR (b)"},
		{
			"nested",
			And(Lit("a"), Or(Lit("b"), Lit("c"))),
			"(a) AND ((b) OR (c))",
		},
		{
			"nested hash",
			Or(Hash(Field("status", Lit(1))), Lit("x")),
			"(status:1) OR (x)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustBuild(t, tc.spec); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCompile_Not(t *testing.T) {
	if got := mustBuild(t, Not(Lit("x"))); got != "NOT (x)" {
		t.Errorf("got %q, want NOT (x)", got)
	}
	if got := mustBuild(t, Not(Lit(""))); got != "" {
		t.Errorf("vacuous negation = %q, want empty", got)
	}
	if got := mustBuild(t, Not(And(Lit("a"), Lit("b")))); got != "NOT ((a) AND (b))" {
		t.Errorf("nested = %q", got)
	}
	if got := mustBuild(t, Not(And(Lit("")))); got != "" {
		t.Errorf("negated empty tree = %q, want empty", got)
	}
}

func TestCompile_NotArity(t *testing.T) {
	for _, spec := range []Spec{
		Op("NOT"),
		Op("NOT", Lit("x"), Lit("y")),
		And(Lit("a"), Op("not")),
	} {
		_, err := Build(spec)
		if !errors.Is(err, domain.ErrInvalidOperand) {
			t.Errorf("Build(%s): expected ErrInvalidOperand, got %v", spec, err)
		}
		var ioe *domain.InvalidOperandError
		if !errors.As(err, &ioe) {
			t.Fatalf("expected *InvalidOperandError, got %T", err)
		}
		if ioe.Operator != OpNot {
			t.Errorf("operator = %q, want NOT", ioe.Operator)
		}
	}
}

func TestCompile_In(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"many", In("type", Values(2, 3)), "(type:2 OR type:3)"},
		{"single", In("type", Values(2)), "type:2"},
		{"scalar", In("type", Lit(5)), "type:5"},
		{"empty set", In("type", Values()), ""},
		{"absent skipped", In("type", List(Lit(1), Null(), Lit(3))), "(type:1 OR type:3)"},
		{"map values", In("type", Hash(Field("a", Lit(1)), Field("b", Lit(2)))), "(type:1 OR type:2)"},
		{"not in", NotIn("type", Values(2, 3)), "NOT (type:2 OR type:3)"},
		{"not in single", NotIn("type", Values(2)), "NOT (type:2)"},
		{"missing values", Op("IN", Lit("type")), ""},
		{"composite field", Op("IN", Values(1), Values(2)), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustBuild(t, tc.spec); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCompile_Hash(t *testing.T) {
	got := mustBuild(t, Hash(
		Field("status", Lit(1)),
		Field("type", Values(2, 3)),
	))
	if got != "(status:1) AND ((type:2 OR type:3))" {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(got, "status:1") || !strings.Contains(got, "type:2 OR type:3") {
		t.Errorf("missing fragments in %q", got)
	}

	if got := mustBuild(t, Hash(Field("status", Lit(1)))); got != "status:1" {
		t.Errorf("single entry = %q, want unwrapped status:1", got)
	}
	if got := mustBuild(t, Hash(Field("f", Null()))); got != "" {
		t.Errorf("only absent = %q, want empty", got)
	}
	if got := mustBuild(t, Hash(Field("f", Null()), Field("g", Lit("x")))); got != "g:x" {
		t.Errorf("absent skipped = %q, want g:x", got)
	}
	if got := mustBuild(t, Hash(Field("f", Values()), Field("g", Lit("x")))); got != "g:x" {
		t.Errorf("empty set skipped = %q, want g:x", got)
	}
}

func TestCompile_Wild(t *testing.T) {
	if got := mustBuild(t, Wild(Lit("foo*"), Lit("bar"))); got != "foo* bar" {
		t.Errorf("got %q, want %q", got, "foo* bar")
	}
	if got := mustBuild(t, Wild(Lit(""), List())); got != "" {
		t.Errorf("all empty = %q, want empty", got)
	}
	// Empty operands still take part in the join.
	if got := mustBuild(t, Wild(Lit("a"), Lit(""), Lit("b"))); got != "a  b" {
		t.Errorf("got %q, want %q", got, "a  b")
	}
}

// Nested conditions under WILD are emitted as written, not compiled.
func TestCompile_WildDoesNotCompileNested(t *testing.T) {
	got := mustBuild(t, Wild(Lit("a"), And(Lit("b"), Lit("c"))))
	if got != "a [AND b c]" {
		t.Errorf("got %q, want %q", got, "a [AND b c]")
	}
}

func TestCompile_SimpleOperator(t *testing.T) {
	tests := []struct {
		spec Spec
		want string
	}{
		{Op("range", Lit("price"), Lit("10"), Lit("20")), "RANGE price 10 20"},
		{Op("XOR", Lit("a"), Lit("b")), "XOR a b"},
		{Op("near", Lit("a"), And(Lit("b"))), "NEAR a [AND b]"},
		{Op("bare"), "BARE"},
		{Values(2, 3), "2 3"},
	}
	for _, tc := range tests {
		if got := mustBuild(t, tc.spec); got != tc.want {
			t.Errorf("Build(%s) = %q, want %q", tc.spec, got, tc.want)
		}
	}
}

func TestCompile_OpaqueHead(t *testing.T) {
	if got := mustBuild(t, List(Values(1), Lit("a"))); got != "" {
		t.Errorf("composite head = %q, want empty", got)
	}
	if got := mustBuild(t, List(Null(), Lit("a"))); got != "" {
		t.Errorf("absent head = %q, want empty", got)
	}
}

func TestCompile_ParamsUntouched(t *testing.T) {
	params := Params{}
	if _, err := Compile(Hash(Field("a", Lit(1)), Field("b", Values(1, 2))), params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(params) != 0 {
		t.Errorf("params = %v, want empty", params)
	}
}

func TestCompile_Concurrent(t *testing.T) {
	spec := And(Hash(Field("status", Lit(1)), Field("type", Values(2, 3))), Not(Lit("x")))
	want := mustBuild(t, spec)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Build(spec)
			if err != nil || got != want {
				t.Errorf("concurrent build = %q, %v", got, err)
			}
		}()
	}
	wg.Wait()
}
