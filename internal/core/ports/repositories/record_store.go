package repositories

import (
	"context"

	"github.com/fxtrack/fxtrack/internal/core/domain"
)

// RecordStore owns the conversion-record collection. The collection is
// persisted as a single serialized blob under one fixed key, so writes always
// replace the whole list; records are never edited or removed individually.
type RecordStore interface {
	// LoadRecords returns the full collection, newest first. A store that has
	// never been written (or was cleared) yields an empty slice, not an error.
	LoadRecords(ctx context.Context) ([]domain.ExchangeRecord, error)

	// SaveRecords replaces the persisted collection wholesale.
	SaveRecords(ctx context.Context, records []domain.ExchangeRecord) error

	// ClearRecords destroys the entire collection in one irreversible step.
	ClearRecords(ctx context.Context) error
}
