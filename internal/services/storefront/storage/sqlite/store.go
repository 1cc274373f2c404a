package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/storefront/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/storefront/internal/services/storefront/storage"
	"github.com/louisbranch/storefront/internal/services/storefront/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for visitor slots.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a slot SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := store.runMigrations(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadSlot returns the payload stored for visitor and slot name.
func (s *Store) LoadSlot(ctx context.Context, visitorID string, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	visitorID, name, err := normalizeKey(visitorID, name)
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = s.sqlDB.QueryRowContext(
		ctx,
		`SELECT payload FROM slots WHERE visitor_id = ? AND name = ?`,
		visitorID,
		name,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("load slot: %w", err)
	}
	return payload, nil
}

// SaveSlot overwrites the payload stored for visitor and slot name.
func (s *Store) SaveSlot(ctx context.Context, visitorID string, name string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	visitorID, name, err := normalizeKey(visitorID, name)
	if err != nil {
		return err
	}
	if payload == nil {
		payload = []byte{}
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO slots (visitor_id, name, payload, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(visitor_id, name) DO UPDATE SET
		    payload = excluded.payload,
		    updated_at = excluded.updated_at`,
		visitorID,
		name,
		payload,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	return nil
}

// runMigrations applies embedded SQL migrations in filename order.
func (s *Store) runMigrations(ctx context.Context) error {
	return sqlitemigrate.ApplyMigrations(ctx, s.sqlDB, migrations.FS, "")
}

func normalizeKey(visitorID string, name string) (string, string, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return "", "", fmt.Errorf("visitor id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("slot name is required")
	}
	return visitorID, name, nil
}

var _ storage.Store = (*Store)(nil)
