package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	t.Run("valid decimal", func(t *testing.T) {
		d, err := Parse(" 123.45 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.Equal(decimal.RequireFromString("123.45")) {
			t.Fatalf("got %s, want 123.45", d)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := Parse("  "); err == nil {
			t.Fatalf("expected error for empty amount")
		}
	})

	t.Run("not a number", func(t *testing.T) {
		if _, err := Parse("ten"); err == nil {
			t.Fatalf("expected error for non-numeric amount")
		}
	})
}

func TestParsePositive(t *testing.T) {
	if _, err := ParsePositive("0"); err == nil {
		t.Fatalf("zero must be rejected")
	}
	if _, err := ParsePositive("-1.50"); err == nil {
		t.Fatalf("negative must be rejected")
	}
	d, err := ParsePositive("0.01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsPositive() {
		t.Fatalf("got %s, want positive", d)
	}
}

func TestSumKeepsExactness(t *testing.T) {
	// 0.1 + 0.2 is exactly 0.3 in decimal arithmetic.
	got := Sum(
		decimal.RequireFromString("0.1"),
		decimal.RequireFromString("0.2"),
	)
	if !got.Equal(decimal.RequireFromString("0.3")) {
		t.Fatalf("Sum = %s, want 0.3", got)
	}
}

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"1000":   "1000.00",
		"0.1":    "0.10",
		"99.999": "100.00",
		"-5":     "-5.00",
	}
	for in, want := range cases {
		if got := Format(decimal.RequireFromString(in)); got != want {
			t.Errorf("Format(%s) = %s, want %s", in, got, want)
		}
	}
}
