// Package store keeps game data snapshots in a local SQLite database, for
// running the calculator without a PostgreSQL server.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/udisondev/armcalc/internal/data"
)

// ErrNoSnapshot is returned when the store holds no snapshot.
var ErrNoSnapshot = errors.New("no game data snapshot")

// Snapshot describes a stored dataset.
type Snapshot struct {
	Fingerprint string
	SavedAt     time.Time
}

// Store wraps SQLite access for game data snapshots.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY,
			fingerprint TEXT NOT NULL UNIQUE,
			saved_at TEXT NOT NULL,
			bundle BLOB NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrating sqlite store: %w", err)
		}
	}
	return nil
}

// Save stores tables unless a snapshot with the same fingerprint exists.
// Reports whether a new snapshot was written.
func (s *Store) Save(ctx context.Context, tables *data.Tables) (Snapshot, bool, error) {
	fp, err := data.Fingerprint(tables)
	if err != nil {
		return Snapshot{}, false, err
	}
	bundle, err := data.EncodeBundle(tables)
	if err != nil {
		return Snapshot{}, false, err
	}

	snap := Snapshot{Fingerprint: fp, SavedAt: time.Now().UTC()}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (fingerprint, saved_at, bundle) VALUES (?, ?, ?)
		 ON CONFLICT (fingerprint) DO NOTHING`,
		fp, snap.SavedAt.Format(time.RFC3339Nano), bundle,
	)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("saving snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("saving snapshot: %w", err)
	}
	if n == 0 {
		slog.Info("game data snapshot already stored", "fingerprint", fp)
		return s.snapshot(ctx, `WHERE fingerprint = ?`, fp)
	}

	slog.Info("stored game data snapshot", "fingerprint", fp, "bytes", len(bundle))
	return snap, true, nil
}

func (s *Store) snapshot(ctx context.Context, where string, args ...any) (Snapshot, bool, error) {
	var snap Snapshot
	var savedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT fingerprint, saved_at FROM snapshots `+where, args...,
	).Scan(&snap.Fingerprint, &savedAt)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("reading snapshot: %w", err)
	}
	snap.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("parsing snapshot time: %w", err)
	}
	return snap, false, nil
}

// Latest returns the most recently saved snapshot and its tables.
func (s *Store) Latest(ctx context.Context) (Snapshot, *data.Tables, error) {
	var (
		snap    Snapshot
		savedAt string
		bundle  []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT fingerprint, saved_at, bundle FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&snap.Fingerprint, &savedAt, &bundle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, nil, ErrNoSnapshot
		}
		return Snapshot{}, nil, fmt.Errorf("reading latest snapshot: %w", err)
	}
	if snap.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return Snapshot{}, nil, fmt.Errorf("parsing snapshot time: %w", err)
	}

	tables, err := data.DecodeBundle(bundle)
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("snapshot %s: %w", snap.Fingerprint, err)
	}
	return snap, tables, nil
}

// LoadTables implements data.Source.
func (s *Store) LoadTables(ctx context.Context) (*data.Tables, error) {
	_, tables, err := s.Latest(ctx)
	return tables, err
}
