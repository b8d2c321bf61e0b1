package dto

import (
	"github.com/fxtrack/fxtrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyPairResponse is one distinct (source, target) combination.
type CurrencyPairResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SourceAggregateResponse is one bar/slice of the per-source charts.
type SourceAggregateResponse struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// DashboardSummaryResponse backs the dashboard cards and charts.
type DashboardSummaryResponse struct {
	TotalTransactions int                       `json:"totalTransactions"`
	MostUsedSource    string                    `json:"mostUsedSource"`
	Pairs             []CurrencyPairResponse    `json:"pairs"`
	ChartData         []SourceAggregateResponse `json:"chartData"`
	FilterCurrency    string                    `json:"filterCurrency,omitempty"`
	HasTransactions   bool                      `json:"hasTransactionsForFilter"`
}

// RatePointResponse is one observation of a pair's rate trend.
type RatePointResponse struct {
	Date string          `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// TradeSeriesResponse is the rate-over-time series for one currency pair,
// oldest observation first.
type TradeSeriesResponse struct {
	From   string              `json:"from"`
	To     string              `json:"to"`
	Points []RatePointResponse `json:"points"`
}

// ToTradeSeriesResponse converts domain rate points to wire form.
func ToTradeSeriesResponse(from, to string, points []domain.RatePoint) TradeSeriesResponse {
	wire := make([]RatePointResponse, len(points))
	for i, p := range points {
		wire[i] = RatePointResponse{Date: p.Date, Rate: p.Rate}
	}
	return TradeSeriesResponse{From: from, To: to, Points: wire}
}

// ToDashboardSummaryResponse converts the domain summary to wire form.
func ToDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	pairs := make([]CurrencyPairResponse, len(s.Pairs))
	for i, p := range s.Pairs {
		pairs[i] = CurrencyPairResponse{From: p.From, To: p.To}
	}
	chart := make([]SourceAggregateResponse, len(s.ChartData))
	for i, a := range s.ChartData {
		chart[i] = SourceAggregateResponse{Name: a.Source, Total: a.Total, Count: a.Count}
	}
	return DashboardSummaryResponse{
		TotalTransactions: s.TotalTransactions,
		MostUsedSource:    s.MostUsedSource,
		Pairs:             pairs,
		ChartData:         chart,
		FilterCurrency:    s.FilterCurrency,
		HasTransactions:   s.HasTransactions,
	}
}
