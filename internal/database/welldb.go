package database

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hydrostat/gwflow/internal/config"
	"github.com/hydrostat/gwflow/internal/model"
)

// WellDB provides SQLite-based storage for well observations.
type WellDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures WellDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended; import and
	// analysis can then overlap without blocking each other.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a WellDB in the specified directory.
func Open(dbDir string, opts Options) (*WellDB, error) {
	dbPath := filepath.Join(dbDir, config.WellDBFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("well database not found at %s (run the import command first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer; readers benefit little from more
	// connections for this access pattern (one bulk load per run).
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	wdb := &WellDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if err := wdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return wdb, nil
}

// Close closes the database connection.
func (wdb *WellDB) Close() error {
	return wdb.db.Close()
}

// Path returns the database file path.
func (wdb *WellDB) Path() string {
	return wdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (wdb *WellDB) createTables() error {
	schema := `
	-- One row per head measurement. well_id is intentionally not unique:
	-- repeated measurements of the same well are separate rows.
	CREATE TABLE IF NOT EXISTS wells (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		well_id TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		head REAL NOT NULL,
		aquifer TEXT NOT NULL,
		observed_on INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_wells_well_id ON wells(well_id);
	CREATE INDEX IF NOT EXISTS idx_wells_aquifer ON wells(aquifer);
	CREATE INDEX IF NOT EXISTS idx_wells_observed_on ON wells(observed_on);
	`
	_, err := wdb.db.ExecContext(context.Background(), schema)
	return err
}

// InsertObservations stores the observations in one transaction.
func (wdb *WellDB) InsertObservations(ctx context.Context, obs []model.Observation) error {
	tx, err := wdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO wells (well_id, x, y, head, aquifer, observed_on) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, o := range obs {
		if _, err := stmt.ExecContext(ctx, o.WellID, o.Location[0], o.Location[1], o.Head, o.Aquifer, o.ObservedOn); err != nil {
			return fmt.Errorf("failed to insert observation %s: %w", o.WellID, err)
		}
	}
	return tx.Commit()
}

// Observations loads the full observation set ordered by well id.
// This is the one bulk read an analysis run performs before the index is
// built; nothing touches the database afterwards.
func (wdb *WellDB) Observations(ctx context.Context) ([]model.Observation, error) {
	rows, err := wdb.db.QueryContext(ctx,
		"SELECT well_id, x, y, head, aquifer, observed_on FROM wells ORDER BY well_id, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var obs []model.Observation
	for rows.Next() {
		var o model.Observation
		var x, y float64
		if err := rows.Scan(&o.WellID, &x, &y, &o.Head, &o.Aquifer, &o.ObservedOn); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		o.Location = orb.Point{x, y}
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

// Count returns the number of stored observations.
func (wdb *WellDB) Count(ctx context.Context) (int, error) {
	var n int
	err := wdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM wells").Scan(&n)
	return n, err
}

// Aquifers returns the distinct aquifer codes in the store, sorted.
// Callers use it as the known vocabulary for category filter validation.
func (wdb *WellDB) Aquifers(ctx context.Context) ([]string, error) {
	rows, err := wdb.db.QueryContext(ctx, "SELECT DISTINCT aquifer FROM wells ORDER BY aquifer")
	if err != nil {
		return nil, fmt.Errorf("failed to query aquifers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// csvColumns is the expected provider export header.
var csvColumns = []string{"well_id", "x", "y", "head", "aquifer", "observed_on"}

// ImportCSV ingests a provider CSV export into the store and returns the
// number of imported rows. The expected header is
// well_id,x,y,head,aquifer,observed_on with coordinates already projected
// to planar meters and dates as integer YYYYMMDD.
func (wdb *WellDB) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) != len(csvColumns) {
		return 0, fmt.Errorf("unexpected CSV header: got %d columns, want %d (%v)", len(header), len(csvColumns), csvColumns)
	}
	for i, want := range csvColumns {
		if header[i] != want {
			return 0, fmt.Errorf("unexpected CSV column %d: got %q, want %q", i, header[i], want)
		}
	}

	var obs []model.Observation
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		o, err := parseCSVRecord(record)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		obs = append(obs, o)
	}

	if err := wdb.InsertObservations(ctx, obs); err != nil {
		return 0, err
	}
	return len(obs), nil
}

// parseCSVRecord converts one CSV record to an Observation.
func parseCSVRecord(record []string) (model.Observation, error) {
	if len(record) != len(csvColumns) {
		return model.Observation{}, fmt.Errorf("got %d fields, want %d", len(record), len(csvColumns))
	}

	x, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return model.Observation{}, fmt.Errorf("bad x coordinate %q: %w", record[1], err)
	}
	y, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return model.Observation{}, fmt.Errorf("bad y coordinate %q: %w", record[2], err)
	}
	head, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return model.Observation{}, fmt.Errorf("bad head %q: %w", record[3], err)
	}
	observedOn, err := strconv.Atoi(record[5])
	if err != nil {
		return model.Observation{}, fmt.Errorf("bad observation date %q: %w", record[5], err)
	}

	return model.Observation{
		WellID:     record[0],
		Location:   orb.Point{x, y},
		Head:       head,
		Aquifer:    record[4],
		ObservedOn: observedOn,
	}, nil
}
