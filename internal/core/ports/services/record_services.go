package services

import (
	"context"

	"github.com/fxtrack/fxtrack/internal/core/domain"
	"github.com/fxtrack/fxtrack/internal/dto"
)

// RecordSvcFacade is the entry-form and table surface over the record store.
type RecordSvcFacade interface {
	// CreateRecord validates the submission and appends a new conversion
	// record. Checks run in order and the first failure aborts with a
	// specific message; no partial side effects occur before all pass.
	CreateRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.ExchangeRecord, error)

	// ListRecords returns a date-filtered, paginated view of the collection
	// together with column totals and the date-filter state.
	ListRecords(ctx context.Context, params dto.ListRecordsParams) (*dto.ListRecordsResponse, error)

	// ClearRecords destroys the entire collection. Irrecoverable.
	ClearRecords(ctx context.Context) error
}
