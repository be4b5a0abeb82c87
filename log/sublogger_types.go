package log

import "io"

// Global vars related to the logger package
var (
	subLoggers = map[string]*SubLogger{}

	// Global is the fallback sublogger for anything without its own
	Global *SubLogger

	// Clock covers simulation clock and schedule generation
	Clock *SubLogger
	// Broker covers the simulated broker and order execution
	Broker *SubLogger
	// Portfolio covers portfolio, ledger and position accounting
	Portfolio *SubLogger
	// Engine covers the event dispatch loop and trading session
	Engine *SubLogger
	// ConfigMgr covers configuration loading and validation
	ConfigMgr *SubLogger
	// Report covers equity curve persistence and chart output
	Report *SubLogger
	// Data covers price data sources
	Data *SubLogger
)

// SubLogger defines a sectioned logger with its own level toggles so that
// noisy subsystems can be quietened individually
type SubLogger struct {
	name   string
	info   bool
	warn   bool
	debug  bool
	error  bool
	output io.Writer
}
