package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var mu sync.RWMutex

func init() {
	Global = registerNewSubLogger("LOG")
	Clock = registerNewSubLogger("CLOCK")
	Broker = registerNewSubLogger("BROKER")
	Portfolio = registerNewSubLogger("PORTFOLIO")
	Engine = registerNewSubLogger("ENGINE")
	ConfigMgr = registerNewSubLogger("CONFIG")
	Report = registerNewSubLogger("REPORT")
	Data = registerNewSubLogger("DATA")
}

// NewSubLogger allows for a new sub logger to be registered, returning an
// error if the name is empty or already taken
func NewSubLogger(name string) (*SubLogger, error) {
	if name == "" {
		return nil, errEmptyLoggerName
	}
	name = strings.ToUpper(name)
	mu.Lock()
	defer mu.Unlock()
	if _, ok := subLoggers[name]; ok {
		return nil, fmt.Errorf("'%v' %w", name, ErrSubLoggerAlreadyRegistered)
	}
	return newSubLogger(name), nil
}

func newSubLogger(name string) *SubLogger {
	sl := &SubLogger{
		name:   name,
		info:   true,
		warn:   true,
		debug:  false,
		error:  true,
		output: os.Stdout,
	}
	subLoggers[name] = sl
	return sl
}

func registerNewSubLogger(name string) *SubLogger {
	mu.Lock()
	defer mu.Unlock()
	return newSubLogger(name)
}

// SetLevels overrides the levels for a sublogger
func (sl *SubLogger) SetLevels(info, warn, debug, errs bool) {
	mu.Lock()
	sl.info = info
	sl.warn = warn
	sl.debug = debug
	sl.error = errs
	mu.Unlock()
}

// SetOutput overrides the output writer for a sublogger
func (sl *SubLogger) SetOutput(w io.Writer) {
	mu.Lock()
	sl.output = w
	mu.Unlock()
}

// SetGlobalLogOutput sets the output writer for every registered sublogger,
// primarily used to quieten or capture output under test
func SetGlobalLogOutput(w io.Writer) {
	mu.Lock()
	for _, sl := range subLoggers {
		sl.output = w
	}
	mu.Unlock()
}

// SetGlobalLogDebug toggles debug output for every registered sublogger
func SetGlobalLogDebug(enabled bool) {
	mu.Lock()
	for _, sl := range subLoggers {
		sl.debug = enabled
	}
	mu.Unlock()
}
