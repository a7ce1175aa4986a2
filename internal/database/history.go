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

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/loadgraph/internal/model"
)

// FileName is the database file name inside the database directory.
const FileName = "loadgraph.db"

var (
	// ErrNotEnoughHistory is returned by Verify when fewer than two
	// generations are stored.
	ErrNotEnoughHistory = errors.New("not enough history: at least two generations are needed")

	// ErrMetadataMismatch is returned by Verify when the latest two
	// generations have different figure metadata digests.
	ErrMetadataMismatch = errors.New("figure metadata differs between the latest two generations")

	// ErrGenerationNotFound is returned when no generation has the given ID.
	ErrGenerationNotFound = errors.New("generation not found")

	// ErrHistoryNotOpen is returned when history is enabled but no database
	// was handed over.
	ErrHistoryNotOpen = errors.New("history is enabled but the database is not open")
)

// HistoryDB stores the manifests of past generations.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
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

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run with --history first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
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

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		generated_at TEXT NOT NULL,
		version TEXT,
		output_dir TEXT NOT NULL,
		metadata_digest TEXT NOT NULL,
		figure_count INTEGER NOT NULL,
		manifest_json TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_generations_digest ON generations(metadata_digest);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// GenerationRecord is the summary of one stored generation.
type GenerationRecord struct {
	// ID is the unique identifier of the generation in the database.
	ID int64 `json:"id"`

	// GeneratedAt is when the generation finished.
	GeneratedAt time.Time `json:"generated_at"`

	// Version is the loadgraph version that produced it.
	Version string `json:"version,omitempty"`

	// OutputDir is where the files were written.
	OutputDir string `json:"output_dir"`

	// MetadataDigest is the figure metadata digest.
	MetadataDigest string `json:"metadata_digest"`

	// FigureCount is the number of chart images written.
	FigureCount int `json:"figure_count"`

	// StoredAt is when the record was inserted.
	StoredAt time.Time `json:"stored_at"`
}

// SaveManifest stores m and returns the new generation ID.
func (h *HistoryDB) SaveManifest(ctx context.Context, m *model.Manifest) (int64, error) {
	manifestJSON, err := json.Marshal(m)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize manifest: %w", err)
	}

	query := `
	INSERT INTO generations (generated_at, version, output_dir, metadata_digest, figure_count, manifest_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := h.db.ExecContext(ctx, query,
		m.GeneratedAt.UTC().Format(time.RFC3339Nano),
		m.Version,
		m.OutputDir,
		m.MetadataDigest,
		len(m.Figures),
		string(manifestJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save manifest: %w", err)
	}

	return result.LastInsertId()
}

// ListGenerations returns the stored generations, newest first. A limit of
// zero or less returns all of them.
func (h *HistoryDB) ListGenerations(ctx context.Context, limit int) ([]GenerationRecord, error) {
	query := `
	SELECT id, generated_at, version, output_dir, metadata_digest, figure_count, timestamp
	FROM generations
	ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var records []GenerationRecord
	for rows.Next() {
		var rec GenerationRecord
		var generatedAt, storedAt string
		var version sql.NullString

		if err := rows.Scan(&rec.ID, &generatedAt, &version, &rec.OutputDir, &rec.MetadataDigest, &rec.FigureCount, &storedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		rec.GeneratedAt = parseTimestamp(generatedAt)
		rec.StoredAt = parseTimestamp(storedAt)
		rec.Version = version.String

		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetManifest returns the full manifest of the generation with the given ID.
func (h *HistoryDB) GetManifest(ctx context.Context, id int64) (*model.Manifest, error) {
	query := `
	SELECT manifest_json FROM generations
	WHERE id = ?
	`

	var manifestJSON string
	err := h.db.QueryRowContext(ctx, query, id).Scan(&manifestJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrGenerationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}

	var m model.Manifest
	if err := json.Unmarshal([]byte(manifestJSON), &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &m, nil
}

// Verification is the result of comparing the latest two generations.
type Verification struct {
	// Latest is the most recent generation.
	Latest GenerationRecord `json:"latest"`

	// Previous is the generation before it.
	Previous GenerationRecord `json:"previous"`

	// Match reports whether both have the same metadata digest.
	Match bool `json:"match"`
}

// Verify compares the metadata digests of the latest two generations.
// It returns ErrNotEnoughHistory when fewer than two are stored, and the
// comparison together with ErrMetadataMismatch when the digests differ.
func (h *HistoryDB) Verify(ctx context.Context) (Verification, error) {
	records, err := h.ListGenerations(ctx, 2)
	if err != nil {
		return Verification{}, err
	}
	if len(records) < 2 {
		return Verification{}, ErrNotEnoughHistory
	}

	v := Verification{
		Latest:   records[0],
		Previous: records[1],
		Match:    records[0].MetadataDigest == records[1].MetadataDigest,
	}
	if !v.Match {
		return v, fmt.Errorf("%w: generation %d has %s, generation %d has %s",
			ErrMetadataMismatch,
			v.Previous.ID, v.Previous.MetadataDigest,
			v.Latest.ID, v.Latest.MetadataDigest,
		)
	}
	return v, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,          // generated_at as stored by SaveManifest
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
