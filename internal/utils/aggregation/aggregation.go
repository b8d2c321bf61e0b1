// Package aggregation holds the pure data-shaping helpers behind the
// dashboard views: distinct currency pairs, per-source totals, date-range
// filtering and pagination over the record collection. Everything here is
// side-effect free and operates on read-only views of the record list.
package aggregation

import (
	"sort"
	"strings"
	"time"

	"github.com/fxtrack/fxtrack/internal/core/domain"
	"github.com/fxtrack/fxtrack/internal/utils"
	"github.com/shopspring/decimal"
)

// MostUsedSentinel is returned by MostFrequentSource for an empty collection.
const MostUsedSentinel = "N/A"

// RecordDateLayout is the timestamp text written into new records. It mirrors
// the locale-formatted dates of historical entries so one parser covers both.
const RecordDateLayout = "1/2/2006, 3:04:05 PM"

// recordDateLayouts are tried in order when parsing a stored date. Older
// blobs contain locale-formatted text, newer tooling may write ISO forms.
var recordDateLayouts = []string{
	RecordDateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRecordDate parses a stored record date. The second return is false
// when no known layout matches; such records are excluded from any bounded
// date filter, matching the historical comparison-against-NaN behavior.
func ParseRecordDate(s string) (time.Time, bool) {
	for _, layout := range recordDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DistinctPairs returns every unique (from, to) combination present in
// records, in order of first occurrence. When fromFilter is non-empty only
// pairs whose source currency equals it are returned.
func DistinctPairs(records []domain.ExchangeRecord, fromFilter string) []domain.CurrencyPair {
	seen := make(map[domain.CurrencyPair]struct{}, len(records))
	pairs := make([]domain.CurrencyPair, 0, len(records))
	for _, r := range records {
		p := domain.CurrencyPair{From: r.FromCurrency, To: r.ToCurrency}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		if fromFilter != "" && p.From != fromFilter {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// FilterByDateRange returns the records whose date falls within
// [start 00:00:00, end 23:59:59.999] inclusive. An absent bound or an
// inverted range (start after end) leaves the input unchanged; the inverted
// case is surfaced to the caller as a suspended filter upstream rather than
// being corrected here.
func FilterByDateRange(records []domain.ExchangeRecord, start, end time.Time) []domain.ExchangeRecord {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return records
	}

	lo := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	hi := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, time.Local)

	filtered := make([]domain.ExchangeRecord, 0, len(records))
	for _, r := range records {
		t, ok := ParseRecordDate(r.Date)
		if !ok {
			continue
		}
		if t.Before(lo) || t.After(hi) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// FilterByPair returns the records whose currencies match the given pair.
// An empty from leaves the input unchanged; an empty to matches every target
// for the source.
func FilterByPair(records []domain.ExchangeRecord, from, to string) []domain.ExchangeRecord {
	if from == "" {
		return records
	}
	filtered := make([]domain.ExchangeRecord, 0, len(records))
	for _, r := range records {
		if r.FromCurrency != from {
			continue
		}
		if to != "" && r.ToCurrency != to {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// PairRateSeries builds the rate-over-time series for one currency pair:
// every record of the pair mapped to its day (the date text up to the first
// comma) and applied rate, sorted oldest first. Records whose dates cannot
// be parsed keep their relative order at the front.
func PairRateSeries(records []domain.ExchangeRecord, from, to string) []domain.RatePoint {
	matched := FilterByPair(records, from, to)

	type datedPoint struct {
		point domain.RatePoint
		at    time.Time
	}
	series := make([]datedPoint, 0, len(matched))
	for _, r := range matched {
		day := r.Date
		if i := strings.Index(day, ","); i >= 0 {
			day = day[:i]
		}
		at, _ := ParseRecordDate(r.Date)
		series = append(series, datedPoint{
			point: domain.RatePoint{Date: day, Rate: utils.ParseNumericOrZero(r.Rate.String())},
			at:    at,
		})
	}
	sort.SliceStable(series, func(i, j int) bool { return series[i].at.Before(series[j].at) })

	points := make([]domain.RatePoint, len(series))
	for i, p := range series {
		points[i] = p.point
	}
	return points
}

// AggregateBySource accumulates the entered amount and a running count per
// source currency, keyed by fromCurrency and ordered by first occurrence.
// Non-numeric amounts count toward the entry count but add zero.
func AggregateBySource(records []domain.ExchangeRecord) []domain.SourceAggregate {
	index := make(map[string]int, len(records))
	aggregates := make([]domain.SourceAggregate, 0, len(records))
	for _, r := range records {
		i, ok := index[r.FromCurrency]
		if !ok {
			i = len(aggregates)
			index[r.FromCurrency] = i
			aggregates = append(aggregates, domain.SourceAggregate{Source: r.FromCurrency, Total: decimal.Zero})
		}
		aggregates[i].Total = aggregates[i].Total.Add(utils.ParseNumericOrZero(r.RealAmount.String()))
		aggregates[i].Count++
	}
	return aggregates
}

// MostFrequentSource returns the source currency with the highest entry
// count. Ties keep the earlier-encountered currency: the fold keeps the
// current best whenever its count is >= the challenger's. Returns the
// sentinel for an empty collection.
func MostFrequentSource(records []domain.ExchangeRecord) string {
	aggregates := AggregateBySource(records)
	if len(aggregates) == 0 {
		return MostUsedSentinel
	}
	best := aggregates[0]
	for _, a := range aggregates[1:] {
		if best.Count >= a.Count {
			continue
		}
		best = a
	}
	return best.Source
}

// Paginate returns the contiguous slice of items for the zero-based
// pageIndex, at most pageSize long. Out-of-range pages yield an empty slice,
// never an error.
func Paginate[T any](items []T, pageIndex, pageSize int) []T {
	if pageIndex < 0 || pageSize <= 0 {
		return []T{}
	}
	lo := pageIndex * pageSize
	if lo >= len(items) {
		return []T{}
	}
	hi := lo + pageSize
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi]
}

// ColumnTotals sums the entered amounts, rates and converted amounts of the
// visible record set for table footers. Malformed numeric text coerces to
// zero via the shared parse-or-zero policy.
func ColumnTotals(records []domain.ExchangeRecord) domain.RecordTotals {
	totals := domain.RecordTotals{
		SumRealAmount: decimal.Zero,
		SumRate:       decimal.Zero,
		SumAmount:     decimal.Zero,
	}
	for _, r := range records {
		totals.SumRealAmount = totals.SumRealAmount.Add(utils.ParseNumericOrZero(r.RealAmount.String()))
		totals.SumRate = totals.SumRate.Add(utils.ParseNumericOrZero(r.Rate.String()))
		totals.SumAmount = totals.SumAmount.Add(utils.ParseNumericOrZero(r.Amount.String()))
	}
	return totals
}
