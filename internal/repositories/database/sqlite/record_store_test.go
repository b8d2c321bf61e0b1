package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fxtrack/fxtrack/internal/core/domain"
	"github.com/fxtrack/fxtrack/internal/repositories/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) (*sqlite.RecordStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "records.db")
	store, err := sqlite.NewRecordStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func TestRecordStore_EmptyStoreYieldsEmptySlice(t *testing.T) {
	store, _ := newTestStore(t)

	records, err := store.LoadRecords(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRecordStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	records := []domain.ExchangeRecord{
		{
			RecordID:     "1718451845000",
			Name:         "Groceries",
			FromCurrency: "USD",
			ToCurrency:   "PKR",
			RealAmount:   "100",
			Rate:         "277.5",
			Amount:       "27750",
			Date:         "6/15/2024, 3:04:05 PM",
		},
		{
			RecordID:     "1718451900000",
			Name:         "Rent",
			FromCurrency: "USD",
			ToCurrency:   "EUR",
			RealAmount:   "250",
			Rate:         "1.18",
			Amount:       "295",
			Date:         "6/16/2024, 1:00:00 PM",
		},
	}

	require.NoError(t, store.SaveRecords(ctx, records))

	loaded, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestRecordStore_SaveReplacesWholesale(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := []domain.ExchangeRecord{{RecordID: "1", Name: "a"}}
	second := []domain.ExchangeRecord{{RecordID: "2", Name: "b"}}

	require.NoError(t, store.SaveRecords(ctx, first))
	require.NoError(t, store.SaveRecords(ctx, second))

	loaded, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b", loaded[0].Name)
}

func TestRecordStore_ClearRecords(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecords(ctx, []domain.ExchangeRecord{{RecordID: "1"}}))
	require.NoError(t, store.ClearRecords(ctx))

	loaded, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

// Blobs written by earlier releases carry numeric ids and amounts. They must
// load without modification.
func TestRecordStore_LoadsLegacyNumericBlob(t *testing.T) {
	store, dbPath := newTestStore(t)
	require.NoError(t, store.Close())

	legacyBlob := `[{
		"userId": 1718451845000,
		"name": "Old entry",
		"fromCurrency": "USD",
		"toCurrency": "PKR",
		"realAmount": 100,
		"rate": 277.5,
		"amount": 27750,
		"date": "6/15/2024, 3:04:05 PM"
	}]`

	raw, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = raw.Exec(
		`INSERT INTO local_state (key, value, updated_at) VALUES ('exchangeData', ?, CURRENT_TIMESTAMP)`,
		legacyBlob,
	)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	reopened, err := sqlite.NewRecordStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1718451845000", records[0].RecordID.String())
	assert.Equal(t, "100", records[0].RealAmount.String())
	assert.Equal(t, "277.5", records[0].Rate.String())
	assert.Equal(t, "27750", records[0].Amount.String())
}
