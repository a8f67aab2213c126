package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"9.9", "R$ 9,90"},
		{"150", "R$ 150,00"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.8", "R$ 1.234.567,80"},
		{"-42.5", "-R$ 42,50"},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got := FormatBRL(amount); got != tc.want {
			t.Fatalf("FormatBRL(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
