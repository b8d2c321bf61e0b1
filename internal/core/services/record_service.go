package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fxtrack/fxtrack/internal/apperrors"
	"github.com/fxtrack/fxtrack/internal/core/domain"
	portsrepo "github.com/fxtrack/fxtrack/internal/core/ports/repositories"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/fxtrack/fxtrack/internal/dto"
	"github.com/fxtrack/fxtrack/internal/utils"
	"github.com/fxtrack/fxtrack/internal/utils/aggregation"
)

// listDateLayout is the YYYY-MM-DD format of the table's date-range inputs.
const listDateLayout = "2006-01-02"

// recordService implements the entry form and record table over the blob
// store. The whole collection is rewritten on every mutation, so all
// validation completes before any store access.
type recordService struct {
	BaseService
	store   portsrepo.RecordStore
	rateSvc portssvc.RateSvcFacade
	now     func() time.Time
}

// NewRecordService creates a record service over the given store and rate
// service.
func NewRecordService(store portsrepo.RecordStore, rateSvc portssvc.RateSvcFacade) portssvc.RecordSvcFacade {
	return &recordService{store: store, rateSvc: rateSvc, now: time.Now}
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

// CreateRecord runs the entry-form checks in order and, once they all pass,
// computes the converted amount and prepends the new record to the
// collection. The first failing check aborts with its specific message.
func (s *recordService) CreateRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.ExchangeRecord, error) {
	name := strings.TrimSpace(req.Name)
	amountText := strings.TrimSpace(req.Amount)
	from := strings.ToUpper(strings.TrimSpace(req.FromCurrency))
	to := strings.ToUpper(strings.TrimSpace(req.ToCurrency))

	if name == "" || amountText == "" || from == "" || to == "" {
		return nil, fmt.Errorf("%w: Please fill all fields", apperrors.ErrValidation)
	}

	realAmount := utils.ParseNumericOrZero(amountText)
	if !realAmount.IsPositive() {
		return nil, fmt.Errorf("%w: Amount must be a positive number", apperrors.ErrValidation)
	}

	if from == to {
		return nil, fmt.Errorf("%w: Source and target currencies cannot be the same!", apperrors.ErrValidation)
	}

	rate, err := s.rateSvc.ConversionRate(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Conversion rate unavailable", slog.String("from", from), slog.String("to", to))
		return nil, err
	}

	records, err := s.store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	now := s.now()
	record := domain.ExchangeRecord{
		RecordID:     domain.LenientValue(strconv.FormatInt(now.UnixMilli(), 10)),
		Name:         name,
		FromCurrency: from,
		ToCurrency:   to,
		RealAmount:   domain.LenientValue(realAmount.String()),
		Rate:         domain.LenientValue(rate.String()),
		Amount:       domain.LenientValue(realAmount.Mul(rate).Round(2).String()),
		Date:         now.Format(aggregation.RecordDateLayout),
	}

	// Newest first.
	updated := make([]domain.ExchangeRecord, 0, len(records)+1)
	updated = append(updated, record)
	updated = append(updated, records...)

	if err := s.store.SaveRecords(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save records: %w", err)
	}

	s.LogInfo(ctx, "Record created",
		slog.String("recordID", record.RecordID.String()),
		slog.String("from", from),
		slog.String("to", to))
	return &record, nil
}

// ListRecords returns a pair- and date-filtered, paginated page of the
// collection with footer totals. An inverted range suspends the date filter
// rather than failing the request: the pair-filtered set is returned and the
// state explains why.
func (s *recordService) ListRecords(ctx context.Context, params dto.ListRecordsParams) (*dto.ListRecordsResponse, error) {
	records, err := s.store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	state := domain.FilterNone
	filterErr := ""
	visible := aggregation.FilterByPair(records,
		strings.ToUpper(strings.TrimSpace(params.FromCurrency)),
		strings.ToUpper(strings.TrimSpace(params.ToCurrency)))

	start, startOK := parseListDate(params.StartDate)
	end, endOK := parseListDate(params.EndDate)
	switch {
	case startOK && endOK && start.After(end):
		state = domain.FilterSuspended
		filterErr = "Start date cannot be after end date"
	case startOK && endOK:
		state = domain.FilterApplied
		visible = aggregation.FilterByDateRange(visible, start, end)
	}

	totals := aggregation.ColumnTotals(visible)
	page := aggregation.Paginate(visible, params.Page, params.PageSize)

	return &dto.ListRecordsResponse{
		Records:     dto.ToListRecordResponse(page),
		Totals:      dto.ToRecordTotalsResponse(totals),
		FilterState: state,
		FilterError: filterErr,
		Page:        params.Page,
		PageSize:    params.PageSize,
		TotalCount:  len(visible),
	}, nil
}

// ClearRecords destroys the whole collection.
func (s *recordService) ClearRecords(ctx context.Context) error {
	if err := s.store.ClearRecords(ctx); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	s.LogInfo(ctx, "Record collection cleared")
	return nil
}

func parseListDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(listDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
