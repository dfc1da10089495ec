package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestCentsFromAmount(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
	}{
		{0, 0},
		{1, 100},
		{65.50, 6550},
		{0.005, 1},
		{2750, 275000},
	}
	for _, tc := range cases {
		if got := CentsFromAmount(tc.in); got != tc.out {
			t.Fatalf("%v expected %d cents, got %d", tc.in, tc.out, got)
		}
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Money{Cents: 108450})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "1084.50" {
		t.Fatalf("expected 1084.50, got %s", b)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		cents int64
		out   string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{191550, "1915.50"},
		{-5000, "-50.00"},
		{100005, "1000.05"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.cents); got != tc.out {
			t.Fatalf("%d expected %q, got %q", tc.cents, tc.out, got)
		}
	}
}
