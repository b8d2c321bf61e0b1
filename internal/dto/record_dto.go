package dto

import (
	"github.com/fxtrack/fxtrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecordRequest is one entry-form submission. Amount stays textual
// here; numeric interpretation is a service concern so the specific
// validation message can name the failing check.
type CreateRecordRequest struct {
	Name         string `json:"name"`
	Amount       string `json:"amount"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
}

// ListRecordsParams defines query parameters for the record table view.
// Dates use YYYY-MM-DD; the page index is zero-based. The optional currency
// pair narrows the table to one trade pair before the date filter applies.
type ListRecordsParams struct {
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
	FromCurrency string `form:"fromCurrency"`
	ToCurrency   string `form:"toCurrency"`
	Page         int    `form:"page,default=0"`
	PageSize     int    `form:"pageSize,default=10"`
}

// RecordResponse is the wire form of one conversion record.
type RecordResponse struct {
	RecordID     string `json:"userId"`
	Name         string `json:"name"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	RealAmount   string `json:"realAmount"`
	Rate         string `json:"rate"`
	Amount       string `json:"amount"`
	Date         string `json:"date"`
}

// RecordTotalsResponse carries the table-footer column sums.
type RecordTotalsResponse struct {
	SumRealAmount decimal.Decimal `json:"sumRealAmount"`
	SumRate       decimal.Decimal `json:"sumRate"`
	SumAmount     decimal.Decimal `json:"sumConvertedAmount"`
}

// ListRecordsResponse is the paginated, filtered table view. FilterState
// makes the suspended start-after-end case explicit instead of silently
// returning unfiltered data.
type ListRecordsResponse struct {
	Records     []RecordResponse       `json:"records"`
	Totals      RecordTotalsResponse   `json:"totals"`
	FilterState domain.DateFilterState `json:"filterState"`
	FilterError string                 `json:"filterError,omitempty"`
	Page        int                    `json:"page"`
	PageSize    int                    `json:"pageSize"`
	TotalCount  int                    `json:"totalCount"`
}

// ToRecordResponse converts a domain.ExchangeRecord to its wire form.
func ToRecordResponse(r domain.ExchangeRecord) RecordResponse {
	return RecordResponse{
		RecordID:     r.RecordID.String(),
		Name:         r.Name,
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		RealAmount:   r.RealAmount.String(),
		Rate:         r.Rate.String(),
		Amount:       r.Amount.String(),
		Date:         r.Date,
	}
}

// ToListRecordResponse converts a slice of records to wire form.
func ToListRecordResponse(records []domain.ExchangeRecord) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i, r := range records {
		responses[i] = ToRecordResponse(r)
	}
	return responses
}

// ToRecordTotalsResponse converts domain totals to wire form.
func ToRecordTotalsResponse(t domain.RecordTotals) RecordTotalsResponse {
	return RecordTotalsResponse{
		SumRealAmount: t.SumRealAmount,
		SumRate:       t.SumRate,
		SumAmount:     t.SumAmount,
	}
}
