package pricing

import (
	"errors"
	"fmt"
	"time"

	"villamare/internal/domain/shared/daterange"
	"villamare/internal/domain/shared/money"
)

var ErrInvalidStay = errors.New("pricing: invalid stay parameters")

// DefaultMinimumStay is the house policy when the configuration leaves the
// minimum unset.
const DefaultMinimumStay = 3

type Season string

const (
	SeasonHigh   Season = "high"
	SeasonLow    Season = "low"
	SeasonNormal Season = "normal"
)

// SeasonWindow is a configured calendar range carrying a nightly-rate
// multiplier in basis points (10000 == x1.0). Both bounds are inclusive.
type SeasonWindow struct {
	Name       Season
	From       time.Time
	To         time.Time
	Multiplier int64
}

func (w SeasonWindow) contains(day time.Time) bool {
	day = daterange.Day(day)
	return !day.Before(daterange.Day(w.From)) && !day.After(daterange.Day(w.To))
}

// Config is the static price configuration, sourced externally and treated
// as read-only by the engine.
type Config struct {
	BaseNightly          money.Money
	CleaningFee          money.Money
	DogFee               money.Money
	CityTaxPerAdultNight money.Money
	MinimumStay          int
	Seasons              []SeasonWindow
}

// MinimumStayError carries the configured minimum so the caller can render
// a localized message.
type MinimumStayError struct {
	MinimumNights int
}

func (e *MinimumStayError) Error() string {
	return fmt.Sprintf("pricing: stay shorter than the %d-night minimum", e.MinimumNights)
}

// Stay is the shape of a candidate booking handed to the engine.
type Stay struct {
	Range    daterange.DateRange
	Adults   int
	Children int
	Pet      bool
}

// Breakdown is the fully itemized cost of a candidate stay. It is derived
// fresh on every quote and never stored.
type Breakdown struct {
	Nights      int
	Season      Season
	NightlyRate money.Money
	BaseTotal   money.Money
	CleaningFee money.Money
	DogFee      money.Money
	Subtotal    money.Money
	CityTax     money.Money
	Total       money.Money
}

// Engine computes deterministic price breakdowns. It holds no mutable state;
// two quotes for the same stay are identical.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.MinimumStay <= 0 {
		cfg.MinimumStay = DefaultMinimumStay
	}
	return &Engine{cfg: cfg}
}

// MinimumStay exposes the effective minimum-stay policy.
func (e *Engine) MinimumStay() int { return e.cfg.MinimumStay }

// Quote prices the stay or rejects it. The season is keyed off the check-in
// date only; a stay spanning a season boundary is priced entirely at the
// check-in season's rate. All arithmetic runs in integer cents.
func (e *Engine) Quote(stay Stay) (Breakdown, error) {
	if err := stay.Range.Validate(); err != nil {
		return Breakdown{}, fmt.Errorf("%w: %v", ErrInvalidStay, err)
	}
	if stay.Adults < 1 || stay.Children < 0 {
		return Breakdown{}, ErrInvalidStay
	}

	nights := stay.Range.Nights()
	if nights < e.cfg.MinimumStay {
		return Breakdown{}, &MinimumStayError{MinimumNights: e.cfg.MinimumStay}
	}

	season, multiplier := e.seasonFor(stay.Range.CheckIn)
	rate := e.cfg.BaseNightly.MulBasisPoints(multiplier)
	baseTotal := rate.Multiply(int64(nights))

	dogFee := money.Money{Amount: 0, Currency: e.cfg.DogFee.Currency}
	if stay.Pet {
		dogFee = e.cfg.DogFee
	}

	subtotal, err := sum(baseTotal, e.cfg.CleaningFee, dogFee)
	if err != nil {
		return Breakdown{}, err
	}

	cityTax := e.cfg.CityTaxPerAdultNight.Multiply(int64(stay.Adults) * int64(nights))
	total, err := subtotal.Add(cityTax)
	if err != nil {
		return Breakdown{}, err
	}

	return Breakdown{
		Nights:      nights,
		Season:      season,
		NightlyRate: rate,
		BaseTotal:   baseTotal,
		CleaningFee: e.cfg.CleaningFee,
		DogFee:      dogFee,
		Subtotal:    subtotal,
		CityTax:     cityTax,
		Total:       total,
	}, nil
}

func (e *Engine) seasonFor(checkIn time.Time) (Season, int64) {
	for _, window := range e.cfg.Seasons {
		if window.contains(checkIn) {
			return window.Name, window.Multiplier
		}
	}
	return SeasonNormal, money.BasisPointsOne
}

func sum(first money.Money, rest ...money.Money) (money.Money, error) {
	total := first
	for _, m := range rest {
		next, err := total.Add(m)
		if err != nil {
			return money.Money{}, err
		}
		total = next
	}
	return total, nil
}
