// Package sqlite implements the on-device record store. The whole record
// collection lives as one JSON text blob under a single fixed key, the same
// shape earlier releases kept in browser local storage, so existing blobs
// can be imported verbatim.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxtrack/fxtrack/internal/core/domain"
	portsrepo "github.com/fxtrack/fxtrack/internal/core/ports/repositories"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

// recordsKey is the fixed key the serialized collection lives under.
const recordsKey = "exchangeData"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RecordStore persists the conversion-record collection in a local SQLite file.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore opens (creating if needed) the local database at dbPath and
// runs the embedded migrations.
func NewRecordStore(dbPath string) (*RecordStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &RecordStore{db: db}, nil
}

// Ensure RecordStore implements the port.
var _ portsrepo.RecordStore = (*RecordStore)(nil)

func runMigrations(dbPath string) error {
	// Separate connection so migrations don't interfere with the main one.
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := migratesqlite.WithInstance(migrateDB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database handle.
func (s *RecordStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadRecords reads and deserializes the full collection. A never-written or
// cleared store yields an empty slice.
func (s *RecordStore) LoadRecords(ctx context.Context) ([]domain.ExchangeRecord, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM local_state WHERE key = ?`, recordsKey,
	).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []domain.ExchangeRecord{}, nil
		}
		return nil, fmt.Errorf("load record blob: %w", err)
	}

	var records []domain.ExchangeRecord
	if err := json.Unmarshal([]byte(blob), &records); err != nil {
		return nil, fmt.Errorf("decode record blob: %w", err)
	}
	if records == nil {
		records = []domain.ExchangeRecord{}
	}
	return records, nil
}

// SaveRecords serializes the collection and replaces the blob wholesale.
func (s *RecordStore) SaveRecords(ctx context.Context, records []domain.ExchangeRecord) error {
	if records == nil {
		records = []domain.ExchangeRecord{}
	}
	blob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode record blob: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO local_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;
	`, recordsKey, string(blob))
	if err != nil {
		return fmt.Errorf("save record blob: %w", err)
	}
	return nil
}

// ClearRecords removes the blob entirely. There is no undo.
func (s *RecordStore) ClearRecords(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM local_state WHERE key = ?`, recordsKey)
	if err != nil {
		return fmt.Errorf("clear record blob: %w", err)
	}
	return nil
}
