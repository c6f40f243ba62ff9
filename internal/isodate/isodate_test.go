package isodate

import "testing"

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2020-01-31", true},
		{"2020-02-29", true},
		{"2021-02-29", false},
		{"2020-02-30", false},
		{"2020-13-01", false},
		{"2020-01-01T10:20:30", true},
		{"2020-01-01T10:20:30.123", true},
		{"2020-01-01T10:20:30.123Z", true},
		{"2020-01-01T10:20:30+02:00", true},
		{"2020-01-01T25:20:30", false},
		{"2020-01-01T10:20", false},
		{"2020-01-01T10:20:30.1", false},
		{"2020-01-01T10:20:30.123456Z", false},
		{" 2020-01-01", false},
		{"20200101", false},
		{"", false},
		{"not a date", false},
	}
	for _, c := range cases {
		if got := Valid(c.in); got != c.want {
			t.Fatalf("Valid(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParse_NoZoneIsUTC(t *testing.T) {
	a, ok := Parse("2020-01-01T00:00:00")
	if !ok {
		t.Fatalf("expected valid date")
	}
	b, _ := Parse("2020-01-01T00:00:00Z")
	if !a.Equal(b) {
		t.Fatalf("expected %v == %v", a, b)
	}
}

func TestCompare(t *testing.T) {
	if c, ok := Compare("2020-01-01", "2020-01-02"); !ok || c != -1 {
		t.Fatalf("got %d %v", c, ok)
	}
	if c, ok := Compare("2020-01-01T02:00:00+02:00", "2020-01-01"); !ok || c != 0 {
		t.Fatalf("got %d %v", c, ok)
	}
	if _, ok := Compare("2020-02-30", "2020-01-01"); ok {
		t.Fatalf("expected invalid comparison")
	}
}
