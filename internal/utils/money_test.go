package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1000, "10.00"},
		{1050, "10.50"},
		{123456, "1234.56"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.cents); got != tc.want {
			t.Fatalf("FormatMoney(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"10", 1000},
		{"10.5", 1050},
		{"10.00", 1000},
		{"0.05", 5},
		{".5", 50},
		{"-2.50", -250},
		{" 12.34 ", 1234},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseMoneyRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "10,50", "1.2.3"} {
		if _, err := ParseMoney(in); err == nil {
			t.Fatalf("ParseMoney(%q) should fail", in)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	got, err := ParseMoney(FormatMoney(1050))
	if err != nil {
		t.Fatalf("round trip error: %v", err)
	}
	if got != 1050 {
		t.Fatalf("round trip lost cents: got %d", got)
	}
}
