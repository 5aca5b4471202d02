package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{"", 10, 10},
		{"x", 5, 5},
		{"-7", 1, -7},
		{"3.5", 9, 9},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("AtoiDefault(%q, %d) = %d; want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestParseUint(t *testing.T) {
	cases := []struct {
		in   string
		want uint
		ok   bool
	}{
		{"42", 42, true},
		{"1", 1, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseUint(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseUint(%q) = (%d, %v); want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
