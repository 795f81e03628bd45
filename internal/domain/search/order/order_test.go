package order

import "testing"

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"asc", Asc, false},
		{"ASC", Asc, false},
		{"", Asc, false},
		{"desc", Desc, false},
		{" Desc ", Desc, false},
		{"up", "", true},
	}
	for _, tc := range tests {
		got, err := ParseDirection(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDirection(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSpec_Set(t *testing.T) {
	var s Spec
	s = s.Set("date", Desc).Set("id", Asc).Set("date", Asc)

	if len(s) != 2 {
		t.Fatalf("len = %d, want 2", len(s))
	}
	if s[0].Name != "date" || s[0].Direction != Asc {
		t.Errorf("s[0] = %+v, want date asc", s[0])
	}
	if got := s.Names(); got[0] != "date" || got[1] != "id" {
		t.Errorf("Names() = %v", got)
	}
	if Desc.Ascending() || !Asc.Ascending() {
		t.Error("Ascending() mismatch")
	}
}
