package page

import "testing"

func TestPage(t *testing.T) {
	p := New()
	if p.HasLimit() {
		t.Error("new page should have no limit")
	}
	if p.EffectiveOffset() != 0 {
		t.Errorf("offset = %d, want 0", p.EffectiveOffset())
	}

	p = Page{Limit: 0, Offset: -3}
	if !p.HasLimit() {
		t.Error("zero limit is a limit")
	}
	if p.EffectiveOffset() != 0 {
		t.Errorf("negative offset = %d, want 0", p.EffectiveOffset())
	}

	p = Page{Limit: 10, Offset: 20}
	if p.EffectiveOffset() != 20 {
		t.Errorf("offset = %d, want 20", p.EffectiveOffset())
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{"0", 0},
		{"", Unset},
		{"-1", Unset},
		{"+5", Unset},
		{" 5", Unset},
		{"1e3", Unset},
		{"99999999999999999999999", Unset},
	}
	for _, tc := range tests {
		if got := ParseLimit(tc.in); got != tc.want {
			t.Errorf("ParseLimit(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
