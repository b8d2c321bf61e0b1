package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider fetches the latest conversion rates for a base currency from
// the external exchange-rate service. One shot, no retry; a failed call
// surfaces as a single wrapped error.
type RateProvider interface {
	LatestRates(ctx context.Context, base string) (map[string]float64, error)
}

// RateSvcFacade serves conversion rates with a last-fetch-wins cache per
// base currency.
type RateSvcFacade interface {
	// Rates returns the full code->rate mapping quoted against base.
	Rates(ctx context.Context, base string) (map[string]float64, error)

	// Currencies returns the sorted currency codes known for base; used to
	// populate selection lists.
	Currencies(ctx context.Context, base string) ([]string, error)

	// ConversionRate returns the multiplier from one currency to another.
	// A missing or non-positive rate is a validation error, never NaN.
	ConversionRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}
