package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/fxtrack/fxtrack/internal/apperrors"
	"github.com/fxtrack/fxtrack/internal/core/domain"
	portsrepo "github.com/fxtrack/fxtrack/internal/core/ports/repositories"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/fxtrack/fxtrack/internal/utils/aggregation"
)

// reportingService derives dashboard aggregates from the record collection.
type reportingService struct {
	BaseService
	store portsrepo.RecordStore
}

// NewReportingService creates a reporting service over the given store.
func NewReportingService(store portsrepo.RecordStore) portssvc.ReportingSvcFacade {
	return &reportingService{store: store}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DashboardSummary computes the dashboard view in one pass over the stored
// collection. A filter currency narrows the pair table to that source and
// reports whether any matching transactions exist; counts, the most-used
// source and the chart always cover the full collection.
func (s *reportingService) DashboardSummary(ctx context.Context, filterCurrency string) (*domain.DashboardSummary, error) {
	records, err := s.store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	filterCurrency = strings.ToUpper(strings.TrimSpace(filterCurrency))

	summary := &domain.DashboardSummary{
		TotalTransactions: len(records),
		MostUsedSource:    aggregation.MostFrequentSource(records),
		Pairs:             aggregation.DistinctPairs(records, filterCurrency),
		ChartData:         aggregation.AggregateBySource(records),
		FilterCurrency:    filterCurrency,
	}

	if filterCurrency == "" {
		summary.HasTransactions = len(records) > 0
		return summary, nil
	}

	for _, r := range records {
		if r.FromCurrency == filterCurrency {
			summary.HasTransactions = true
			break
		}
	}
	return summary, nil
}

// PairRateSeries returns the rate-over-time observations for one currency
// pair, oldest first, backing the trade trend chart.
func (s *reportingService) PairRateSeries(ctx context.Context, from, to string) ([]domain.RatePoint, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: Both source and target currencies are required", apperrors.ErrValidation)
	}

	records, err := s.store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return aggregation.PairRateSeries(records, from, to), nil
}
