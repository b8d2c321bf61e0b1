package domain

import "github.com/shopspring/decimal"

// SourceAggregate accumulates entered amounts and a running count for one
// source currency. Order of aggregates follows first occurrence in the
// record list so chart output is stable for a fixed input.
type SourceAggregate struct {
	Source string          `json:"name"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
}

// RecordTotals holds the column sums shown under a record table.
type RecordTotals struct {
	SumRealAmount decimal.Decimal `json:"sumRealAmount"`
	SumRate       decimal.Decimal `json:"sumRate"`
	SumAmount     decimal.Decimal `json:"sumConvertedAmount"`
}

// DateFilterState reports what happened to a requested date-range filter.
type DateFilterState string

const (
	// FilterNone means no complete date range was supplied.
	FilterNone DateFilterState = "NONE"
	// FilterApplied means the range was valid and records were filtered.
	FilterApplied DateFilterState = "APPLIED"
	// FilterSuspended means start was after end; the filter is ignored and
	// the full set is returned, with the error surfaced to the caller.
	FilterSuspended DateFilterState = "SUSPENDED"
)

// RatePoint is one observation in a pair's rate-over-time series: the day
// portion of the record's date and the rate that was applied.
type RatePoint struct {
	Date string          `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// DashboardSummary is the aggregated view backing the dashboard cards,
// charts and per-pair tables.
type DashboardSummary struct {
	TotalTransactions int               `json:"totalTransactions"`
	MostUsedSource    string            `json:"mostUsedSource"`
	Pairs             []CurrencyPair    `json:"pairs"`
	ChartData         []SourceAggregate `json:"chartData"`
	FilterCurrency    string            `json:"filterCurrency,omitempty"`
	HasTransactions   bool              `json:"hasTransactionsForFilter"`
}
