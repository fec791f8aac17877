package money

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	m, err := New(8000, "eur")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Currency != "EUR" {
		t.Errorf("currency not uppercased: %q", m.Currency)
	}
	if _, err := New(100, "EURO"); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestAdd(t *testing.T) {
	a := Must(24000, "EUR")
	b := Must(6000, "EUR")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Amount != 30000 {
		t.Errorf("sum = %d, want 30000", sum.Amount)
	}
	if _, err := a.Add(Must(100, "USD")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestMulBasisPoints(t *testing.T) {
	cases := []struct {
		amount int64
		bps    int64
		want   int64
	}{
		{8000, 10000, 8000},
		{8000, 12000, 9600},
		{8000, 8500, 6800},
		{333, 12500, 416}, // 416.25 rounds down
		{333, 15000, 500}, // 499.5 rounds up
	}
	for _, tc := range cases {
		got := Must(tc.amount, "EUR").MulBasisPoints(tc.bps)
		if got.Amount != tc.want {
			t.Errorf("%d x %dbps = %d, want %d", tc.amount, tc.bps, got.Amount, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	if got := Must(32460, "EUR").String(); got != "324.60 EUR" {
		t.Errorf("String = %q", got)
	}
	if got := Must(-205, "EUR").String(); got != "-2.05 EUR" {
		t.Errorf("String = %q", got)
	}
}
