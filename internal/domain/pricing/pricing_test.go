package pricing

import (
	"errors"
	"testing"
	"time"

	"villamare/internal/domain/shared/daterange"
	"villamare/internal/domain/shared/money"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, checkIn, checkOut time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(checkIn, checkOut)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	return dr
}

func testConfig() Config {
	return Config{
		BaseNightly:          money.Must(8000, "EUR"),
		CleaningFee:          money.Must(6000, "EUR"),
		DogFee:               money.Must(2500, "EUR"),
		CityTaxPerAdultNight: money.Must(410, "EUR"),
		MinimumStay:          3,
		Seasons: []SeasonWindow{
			{Name: SeasonHigh, From: date(2026, 6, 15), To: date(2026, 9, 15), Multiplier: 12500},
			{Name: SeasonLow, From: date(2026, 1, 10), To: date(2026, 3, 31), Multiplier: 8500},
		},
	}
}

func TestQuoteNormalSeason(t *testing.T) {
	engine := NewEngine(testConfig())
	breakdown, err := engine.Quote(Stay{
		Range:  mustRange(t, date(2025, 12, 10), date(2025, 12, 13)),
		Adults: 2,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if breakdown.Nights != 3 {
		t.Errorf("nights = %d, want 3", breakdown.Nights)
	}
	if breakdown.Season != SeasonNormal {
		t.Errorf("season = %q, want normal", breakdown.Season)
	}
	if breakdown.BaseTotal.Amount != 24000 {
		t.Errorf("baseTotal = %d, want 24000", breakdown.BaseTotal.Amount)
	}
	if breakdown.Subtotal.Amount != 30000 {
		t.Errorf("subtotal = %d, want 30000", breakdown.Subtotal.Amount)
	}
	if breakdown.CityTax.Amount != 2460 {
		t.Errorf("cityTax = %d, want 2460", breakdown.CityTax.Amount)
	}
	if breakdown.Total.Amount != 32460 {
		t.Errorf("total = %d, want 32460", breakdown.Total.Amount)
	}
	if breakdown.DogFee.Amount != 0 {
		t.Errorf("dogFee = %d, want 0 without a pet", breakdown.DogFee.Amount)
	}
}

func TestQuoteMinimumStay(t *testing.T) {
	engine := NewEngine(testConfig())
	_, err := engine.Quote(Stay{
		Range:  mustRange(t, date(2025, 12, 10), date(2025, 12, 11)),
		Adults: 2,
	})
	var minErr *MinimumStayError
	if !errors.As(err, &minErr) {
		t.Fatalf("expected MinimumStayError, got %v", err)
	}
	if minErr.MinimumNights != 3 {
		t.Errorf("minimum = %d, want 3", minErr.MinimumNights)
	}
}

func TestQuoteDefaultsMinimumStay(t *testing.T) {
	cfg := testConfig()
	cfg.MinimumStay = 0
	engine := NewEngine(cfg)
	if engine.MinimumStay() != DefaultMinimumStay {
		t.Errorf("MinimumStay = %d, want default %d", engine.MinimumStay(), DefaultMinimumStay)
	}
}

func TestQuoteSeasonByCheckIn(t *testing.T) {
	engine := NewEngine(testConfig())

	t.Run("high season", func(t *testing.T) {
		breakdown, err := engine.Quote(Stay{
			Range:  mustRange(t, date(2026, 7, 1), date(2026, 7, 5)),
			Adults: 2,
		})
		if err != nil {
			t.Fatalf("Quote: %v", err)
		}
		if breakdown.Season != SeasonHigh {
			t.Errorf("season = %q, want high", breakdown.Season)
		}
		if breakdown.NightlyRate.Amount != 10000 {
			t.Errorf("nightly = %d, want 10000 (8000 x 1.25)", breakdown.NightlyRate.Amount)
		}
	})

	t.Run("check-in decides for a boundary-spanning stay", func(t *testing.T) {
		// Checks in during high season, checks out after it.
		breakdown, err := engine.Quote(Stay{
			Range:  mustRange(t, date(2026, 9, 14), date(2026, 9, 18)),
			Adults: 1,
		})
		if err != nil {
			t.Fatalf("Quote: %v", err)
		}
		if breakdown.Season != SeasonHigh {
			t.Errorf("season = %q, want high (keyed off check-in)", breakdown.Season)
		}
		if breakdown.BaseTotal.Amount != 4*10000 {
			t.Errorf("all nights priced at check-in season, got %d", breakdown.BaseTotal.Amount)
		}
	})

	t.Run("window end inclusive", func(t *testing.T) {
		breakdown, err := engine.Quote(Stay{
			Range:  mustRange(t, date(2026, 3, 31), date(2026, 4, 4)),
			Adults: 1,
		})
		if err != nil {
			t.Fatalf("Quote: %v", err)
		}
		if breakdown.Season != SeasonLow {
			t.Errorf("season = %q, want low", breakdown.Season)
		}
	})
}

func TestQuotePetFee(t *testing.T) {
	engine := NewEngine(testConfig())
	breakdown, err := engine.Quote(Stay{
		Range:  mustRange(t, date(2025, 12, 10), date(2025, 12, 13)),
		Adults: 2,
		Pet:    true,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if breakdown.DogFee.Amount != 2500 {
		t.Errorf("dogFee = %d, want 2500", breakdown.DogFee.Amount)
	}
	if breakdown.Subtotal.Amount != 32500 {
		t.Errorf("subtotal = %d, want 32500", breakdown.Subtotal.Amount)
	}
}

func TestQuoteChildrenExcludedFromTax(t *testing.T) {
	engine := NewEngine(testConfig())
	breakdown, err := engine.Quote(Stay{
		Range:    mustRange(t, date(2025, 12, 10), date(2025, 12, 13)),
		Adults:   2,
		Children: 3,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if breakdown.CityTax.Amount != 2460 {
		t.Errorf("cityTax = %d, children must not be taxed", breakdown.CityTax.Amount)
	}
}

func TestQuoteAdditiveInvariants(t *testing.T) {
	engine := NewEngine(testConfig())
	stays := []Stay{
		{Range: mustRange(t, date(2025, 12, 10), date(2025, 12, 13)), Adults: 2},
		{Range: mustRange(t, date(2026, 7, 1), date(2026, 7, 11)), Adults: 4, Children: 2, Pet: true},
		{Range: mustRange(t, date(2026, 2, 1), date(2026, 2, 8)), Adults: 1, Pet: true},
		{Range: mustRange(t, date(2026, 11, 20), date(2026, 11, 24)), Adults: 3, Children: 1},
	}
	for _, stay := range stays {
		breakdown, err := engine.Quote(stay)
		if err != nil {
			t.Fatalf("Quote(%+v): %v", stay, err)
		}
		wantSubtotal := breakdown.BaseTotal.Amount + breakdown.CleaningFee.Amount + breakdown.DogFee.Amount
		if breakdown.Subtotal.Amount != wantSubtotal {
			t.Errorf("subtotal invariant broken: %d != %d", breakdown.Subtotal.Amount, wantSubtotal)
		}
		if breakdown.Total.Amount != breakdown.Subtotal.Amount+breakdown.CityTax.Amount {
			t.Errorf("total invariant broken: %d != %d + %d", breakdown.Total.Amount, breakdown.Subtotal.Amount, breakdown.CityTax.Amount)
		}
	}
}

func TestQuoteIdempotent(t *testing.T) {
	engine := NewEngine(testConfig())
	stay := Stay{
		Range:  mustRange(t, date(2026, 7, 1), date(2026, 7, 8)),
		Adults: 2,
		Pet:    true,
	}
	first, err := engine.Quote(stay)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	second, err := engine.Quote(stay)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if first != second {
		t.Errorf("quotes differ:\n%+v\n%+v", first, second)
	}
}

func TestQuoteInvalidInput(t *testing.T) {
	engine := NewEngine(testConfig())

	t.Run("no adults", func(t *testing.T) {
		_, err := engine.Quote(Stay{
			Range: mustRange(t, date(2025, 12, 10), date(2025, 12, 13)),
		})
		if !errors.Is(err, ErrInvalidStay) {
			t.Errorf("expected ErrInvalidStay, got %v", err)
		}
	})

	t.Run("empty range", func(t *testing.T) {
		_, err := engine.Quote(Stay{Adults: 2})
		if !errors.Is(err, ErrInvalidStay) {
			t.Errorf("expected ErrInvalidStay, got %v", err)
		}
	})
}
