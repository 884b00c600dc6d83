package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"stationctl/internal/config"
	"stationctl/internal/station"
)

// Store persists station payloads in a local SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the snapshot database under the state directory and
// applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.StateDir, "snapshot.db"))
}

// OpenPath connects to a snapshot database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) applySchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS stations (
            station_id TEXT PRIMARY KEY,
            payload     TEXT NOT NULL,
            updated_at  TEXT NOT NULL
        )`)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// ReplaceAll swaps the stored collection for the given payloads in one
// transaction.
func (s *Store) ReplaceAll(ctx context.Context, payloads []station.Payload) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
		return fmt.Errorf("clear stations: %w", err)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	for _, payload := range payloads {
		id := payload.ID()
		if id == "" {
			continue
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal station %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stations (station_id, payload, updated_at) VALUES (?, ?, ?)`,
			id, string(encoded), timestamp); err != nil {
			return fmt.Errorf("insert station %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Upsert stores or replaces one station payload.
func (s *Store) Upsert(ctx context.Context, payload station.Payload) error {
	id := payload.ID()
	if id == "" {
		return fmt.Errorf("station payload missing id")
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal station %s: %w", id, err)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO stations (station_id, payload, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(station_id) DO UPDATE SET
            payload = excluded.payload,
            updated_at = excluded.updated_at`,
		id, string(encoded), timestamp)
	if err != nil {
		return fmt.Errorf("upsert station %s: %w", id, err)
	}
	return nil
}

// Delete removes one station by id. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("station id required")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM stations WHERE station_id = ?`, id); err != nil {
		return fmt.Errorf("delete station %s: %w", id, err)
	}
	return nil
}

// List returns every stored payload ordered by station id.
func (s *Store) List(ctx context.Context) ([]station.Payload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM stations ORDER BY station_id`)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var payloads []station.Payload
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("scan station row: %w", err)
		}
		var payload station.Payload
		if err := json.Unmarshal([]byte(encoded), &payload); err != nil {
			return nil, fmt.Errorf("decode station row: %w", err)
		}
		payloads = append(payloads, payload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stations: %w", err)
	}
	return payloads, nil
}
