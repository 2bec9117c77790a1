package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
)

// FileName is the name of the SQLite file created inside the database directory.
const FileName = "rmcatalog.db"

// ErrSnapshotNotFound is returned when no snapshot matches the requested ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotDB is an append-only log of rendered catalog views.
// Saved snapshots are only listed and re-rendered; they never feed back
// into a live view.
type SnapshotDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now returns the current time. Replaced in tests.
	now func() time.Time
}

// Options configures SnapshotDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// SnapshotRecord is the metadata of a saved snapshot, without its cards.
type SnapshotRecord struct {
	// ID is the UUID assigned when the snapshot was saved.
	ID string

	// TakenAt is when the view was rendered.
	TakenAt time.Time

	// SavedAt is when the row was written.
	SavedAt time.Time

	// Filter is the status filter that was active.
	Filter model.Filter

	// Location is the drilled-into location name, or empty for the listing.
	Location string

	// TotalCount is the catalog-wide character count from the page info.
	TotalCount int

	// ShownCount is the number of cards in the snapshot.
	ShownCount int
}

// Open opens or creates a SnapshotDB inside dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*SnapshotDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SnapshotDB{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Path returns the location of the database file.
func (sdb *SnapshotDB) Path() string {
	return sdb.dbPath
}

// Close closes the database connection.
func (sdb *SnapshotDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *SnapshotDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		taken_at TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		filter TEXT NOT NULL,
		location TEXT,
		total_count INTEGER NOT NULL,
		shown_count INTEGER NOT NULL,
		snapshot_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_saved_at ON snapshots(saved_at);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveSnapshot stores snap under a freshly generated ID and returns that ID.
// snap.ID is set to the returned value.
func (sdb *SnapshotDB) SaveSnapshot(ctx context.Context, snap *model.Snapshot) (string, error) {
	if snap == nil {
		return "", errors.New("snapshot is nil")
	}

	id := uuid.NewString()
	stored := *snap
	stored.ID = id

	snapJSON, err := json.Marshal(&stored)
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	query := `
	INSERT INTO snapshots (id, taken_at, saved_at, filter, location, total_count, shown_count, snapshot_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = sdb.db.ExecContext(ctx, query,
		id,
		stored.TakenAt.UTC().Format(time.RFC3339Nano),
		sdb.now().UTC().Format(time.RFC3339Nano),
		string(stored.Filter),
		stored.SelectedLocation,
		stored.TotalCount,
		len(stored.Cards),
		string(snapJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}

	snap.ID = id
	return id, nil
}

// ListSnapshots returns snapshot metadata, newest first.
// A limit of zero or less returns every row.
func (sdb *SnapshotDB) ListSnapshots(ctx context.Context, limit int) ([]SnapshotRecord, error) {
	query := `
	SELECT id, taken_at, saved_at, filter, location, total_count, shown_count
	FROM snapshots
	ORDER BY saved_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		var (
			rec      SnapshotRecord
			takenAt  string
			savedAt  string
			filter   string
			location sql.NullString
		)
		if err := rows.Scan(&rec.ID, &takenAt, &savedAt, &filter, &location, &rec.TotalCount, &rec.ShownCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		rec.TakenAt = parseTimestamp(takenAt)
		rec.SavedAt = parseTimestamp(savedAt)
		rec.Filter = model.Filter(filter)
		rec.Location = location.String
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetSnapshot loads the full snapshot saved under id.
func (sdb *SnapshotDB) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	query := `
	SELECT snapshot_json FROM snapshots
	WHERE id = ?
	`

	var snapJSON string
	err := sdb.db.QueryRowContext(ctx, query, id).Scan(&snapJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(snapJSON), &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	snap.ID = id

	return &snap, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a stored timestamp, returning the zero time when
// no known format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
