package services

import (
	"context"

	"github.com/fxtrack/fxtrack/internal/core/domain"
)

// ReportingSvcFacade derives the aggregated dashboard views from the record
// collection. It only ever reads the store.
type ReportingSvcFacade interface {
	// DashboardSummary computes transaction counts, the most used source
	// currency, distinct pairs and per-source chart data. When filterCurrency
	// is non-empty, pairs are restricted to that source and the summary
	// reports whether any transactions exist for it.
	DashboardSummary(ctx context.Context, filterCurrency string) (*domain.DashboardSummary, error)

	// PairRateSeries returns the rate-over-time series for one currency
	// pair, oldest observation first. Both codes are required.
	PairRateSeries(ctx context.Context, from, to string) ([]domain.RatePoint, error)
}
