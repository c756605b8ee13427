package config

import "testing"

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		fallback string
		want     string
	}{
		{name: "valid", raw: "12.50", fallback: "0", want: "12.50"},
		{name: "valid with spaces", raw: " 0.20 ", fallback: "0", want: "0.20"},
		{name: "zero", raw: "0", fallback: "0.20", want: "0"},
		{name: "typo falls back", raw: "0,20", fallback: "0.20", want: "0.20"},
		{name: "garbage falls back", raw: "free", fallback: "0", want: "0"},
		{name: "empty falls back", raw: "", fallback: "0.20", want: "0.20"},
	}
	for _, tc := range cases {
		got := normalizeAmount("pricing.tax_amount", tc.raw, tc.fallback)
		if got != tc.want {
			t.Fatalf("%s: normalizeAmount(%q) = %q, want %q", tc.name, tc.raw, got, tc.want)
		}
	}
}
