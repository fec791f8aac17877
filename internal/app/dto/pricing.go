package dto

import (
	domainpricing "villamare/internal/domain/pricing"
	"villamare/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Display  string `json:"display"`
}

type PriceBreakdown struct {
	Nights      int      `json:"nights"`
	Season      string   `json:"season"`
	NightlyRate MoneyDTO `json:"nightly_rate"`
	BaseTotal   MoneyDTO `json:"base_total"`
	CleaningFee MoneyDTO `json:"cleaning_fee"`
	DogFee      MoneyDTO `json:"dog_fee"`
	Subtotal    MoneyDTO `json:"subtotal"`
	CityTax     MoneyDTO `json:"city_tax"`
	Total       MoneyDTO `json:"total"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{
		Amount:   value.Amount,
		Currency: value.Currency,
		Display:  value.String(),
	}
}

func MapBreakdown(b domainpricing.Breakdown) PriceBreakdown {
	return PriceBreakdown{
		Nights:      b.Nights,
		Season:      string(b.Season),
		NightlyRate: MapMoney(b.NightlyRate),
		BaseTotal:   MapMoney(b.BaseTotal),
		CleaningFee: MapMoney(b.CleaningFee),
		DogFee:      MapMoney(b.DogFee),
		Subtotal:    MapMoney(b.Subtotal),
		CityTax:     MapMoney(b.CityTax),
		Total:       MapMoney(b.Total),
	}
}
