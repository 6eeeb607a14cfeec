package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/taskseries/internal/model"
)

// FileName is the database file name inside the data directory.
const FileName = "taskseries.db"

// SnapshotDB stores Mapping snapshots in SQLite.
type SnapshotDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures SnapshotDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file when missing.
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

// Open opens or creates a SnapshotDB in dbDir.
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

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SnapshotDB{
		db:     db,
		dbPath: dbPath,
	}

	// Concurrent processes wait for the lock instead of failing with SQLITE_BUSY.
	if _, err := db.ExecContext(context.Background(), "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
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

// Path returns the database file path.
func (sdb *SnapshotDB) Path() string {
	return sdb.dbPath
}

// Close closes the database connection.
func (sdb *SnapshotDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SnapshotDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		digest TEXT NOT NULL,
		entry_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(source);

	CREATE TABLE IF NOT EXISTS entries (
		snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		task TEXT NOT NULL,
		series TEXT NOT NULL,
		PRIMARY KEY (snapshot_id, position),
		UNIQUE (snapshot_id, task)
	);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// Digest returns the hex SHA3-256 digest of the mapping's entries in order.
func Digest(m *model.Mapping) string {
	// Entries marshal to a plain JSON array, which cannot fail.
	data, _ := json.Marshal(m.Slice()) //nolint:errcheck,errchkjson
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SaveSnapshot stores m under source. When the latest snapshot of source has
// the same digest nothing is written and its ID is returned with created false.
func (sdb *SnapshotDB) SaveSnapshot(ctx context.Context, source string, m *model.Mapping) (id int64, created bool, err error) {
	digest := Digest(m)

	latest, err := sdb.latestMeta(ctx, source)
	if err != nil {
		return 0, false, err
	}
	if latest != nil && latest.Digest == digest {
		return latest.ID, false, nil
	}

	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (source, digest, entry_count) VALUES (?, ?, ?)`,
		source, digest, m.Len(),
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert snapshot: %w", err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (snapshot_id, position, task, series) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	position := 0
	for task, series := range m.Entries() {
		if _, err = stmt.ExecContext(ctx, id, position, task, series); err != nil {
			return 0, false, fmt.Errorf("failed to insert entry %q: %w", task, err)
		}
		position++
	}

	if err = tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return id, true, nil
}

// SnapshotMetadata describes a stored snapshot without its entries.
type SnapshotMetadata struct {
	ID         int64
	Source     string
	Timestamp  time.Time
	Digest     string
	EntryCount int
}

func (sdb *SnapshotDB) latestMeta(ctx context.Context, source string) (*SnapshotMetadata, error) {
	query := `
	SELECT id, source, timestamp, digest, entry_count
	FROM snapshots
	WHERE source = ?
	ORDER BY id DESC
	LIMIT 1
	`

	var meta SnapshotMetadata
	var timestamp string
	err := sdb.db.QueryRowContext(ctx, query, source).Scan(
		&meta.ID, &meta.Source, &timestamp, &meta.Digest, &meta.EntryCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	meta.Timestamp = parseTimestamp(timestamp)
	return &meta, nil
}

// LatestSnapshot loads the most recent snapshot of source.
// It returns nil without error when source has no snapshot.
func (sdb *SnapshotDB) LatestSnapshot(ctx context.Context, source string) (*model.Mapping, error) {
	meta, err := sdb.latestMeta(ctx, source)
	if err != nil || meta == nil {
		return nil, err
	}
	return sdb.loadEntries(ctx, meta.ID)
}

// SnapshotByID loads a snapshot by its ID.
// It returns nil without error when no snapshot has that ID.
func (sdb *SnapshotDB) SnapshotByID(ctx context.Context, id int64) (*model.Mapping, error) {
	var exists int
	err := sdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up snapshot: %w", err)
	}
	if exists == 0 {
		return nil, nil
	}
	return sdb.loadEntries(ctx, id)
}

func (sdb *SnapshotDB) loadEntries(ctx context.Context, id int64) (*model.Mapping, error) {
	rows, err := sdb.db.QueryContext(ctx,
		`SELECT task, series FROM entries WHERE snapshot_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer rows.Close()

	m := model.NewMapping()
	for rows.Next() {
		var task, series string
		if err := rows.Scan(&task, &series); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		m.Set(task, series)
	}
	return m, rows.Err()
}

// ListSnapshots returns snapshot metadata, newest first.
// An empty source lists snapshots of every source.
func (sdb *SnapshotDB) ListSnapshots(ctx context.Context, source string) ([]SnapshotMetadata, error) {
	query := `
	SELECT id, source, timestamp, digest, entry_count
	FROM snapshots
	WHERE 1=1
	`
	args := make([]any, 0, 1)
	if source != "" {
		query += " AND source = ?"
		args = append(args, source)
	}
	query += " ORDER BY id DESC"

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var results []SnapshotMetadata
	for rows.Next() {
		var meta SnapshotMetadata
		var timestamp string
		if err := rows.Scan(&meta.ID, &meta.Source, &timestamp, &meta.Digest, &meta.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		meta.Timestamp = parseTimestamp(timestamp)
		results = append(results, meta)
	}
	return results, rows.Err()
}

// ListSources returns the distinct snapshot sources in name order.
func (sdb *SnapshotDB) ListSources(ctx context.Context) ([]string, error) {
	rows, err := sdb.db.QueryContext(ctx, `SELECT DISTINCT source FROM snapshots ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

// timestampFormats contains the timestamp formats SQLite may return,
// most specific first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
