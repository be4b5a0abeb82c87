package report

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotEnoughPoints is raised when a chart is requested with fewer
	// than two equity points
	ErrNotEnoughPoints = errors.New("equity chart needs at least two points")
	// ErrStoreClosed is raised when a snapshot is written to a closed store
	ErrStoreClosed = errors.New("report store is closed")
)

// EquityPoint is one (timestamp, equity) sample of the account curve
type EquityPoint struct {
	Timestamp time.Time
	Equity    decimal.Decimal
}

// CSVWriter appends equity samples to a CSV file, one row per post-market
// snapshot
type CSVWriter struct {
	f *os.File
	w *csv.Writer
}

// Store persists run results to a SQLite database
type Store struct {
	db *sql.DB
}
