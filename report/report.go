// Package report persists backtest results: an append-only equity CSV, a
// SQLite store of run snapshots and a rendered equity curve chart
package report

import (
	"database/sql"
	"encoding/csv"
	"os"
	"time"

	// registers the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/quantave/backtester/log"
	"github.com/shopspring/decimal"
)

const timestampFormat = time.RFC3339

// NewCSVWriter opens or creates the equity CSV at path, writing the header
// on a fresh file
func NewCSVWriter(path string) (*CSVWriter, error) {
	info, err := os.Stat(path)
	fresh := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if fresh {
		if err = w.Write([]string{"timestamp", "equity"}); err != nil {
			f.Close()
			return nil, err
		}
	}
	return &CSVWriter{f: f, w: w}, nil
}

// Append writes one equity sample
func (c *CSVWriter) Append(dt time.Time, equity decimal.Decimal) error {
	return c.w.Write([]string{dt.Format(timestampFormat), equity.Round(2).String()})
}

// Close flushes buffered rows and closes the file
func (c *CSVWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}

// OpenStore opens or creates the SQLite results database at path
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	const schema = `
CREATE TABLE IF NOT EXISTS equity_snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_name TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	equity TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_equity_snapshots_run ON equity_snapshots (run_name, timestamp);`
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// InsertSnapshot persists one equity sample for a named run
func (s *Store) InsertSnapshot(runName string, dt time.Time, equity decimal.Decimal) error {
	if s.db == nil {
		return ErrStoreClosed
	}
	_, err := s.db.Exec(
		"INSERT INTO equity_snapshots (run_name, timestamp, equity) VALUES (?, ?, ?)",
		runName, dt.Format(timestampFormat), equity.Round(2).String())
	return err
}

// Snapshots returns the persisted equity curve of a named run in time order
func (s *Store) Snapshots(runName string) ([]EquityPoint, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}
	rows, err := s.db.Query(
		"SELECT timestamp, equity FROM equity_snapshots WHERE run_name = ? ORDER BY timestamp",
		runName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityPoint
	for rows.Next() {
		var ts, equity string
		if err = rows.Scan(&ts, &equity); err != nil {
			return nil, err
		}
		point := EquityPoint{}
		if point.Timestamp, err = time.Parse(timestampFormat, ts); err != nil {
			return nil, err
		}
		if point.Equity, err = decimal.NewFromString(equity); err != nil {
			return nil, err
		}
		out = append(out, point)
	}
	return out, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		log.Errorf(log.Report, "closing report store: %v", err)
	}
	return err
}
