package log

import (
	"errors"
	"fmt"
	"time"
)

const (
	timestampFormat = "2006-01-02 15:04:05"

	infoHeader  = "[INFO]"
	warnHeader  = "[WARN]"
	debugHeader = "[DEBUG]"
	errorHeader = "[ERROR]"
)

var (
	// ErrSubLoggerAlreadyRegistered is returned when a sublogger name collides
	ErrSubLoggerAlreadyRegistered = errors.New("sub logger already registered")

	errEmptyLoggerName = errors.New("cannot have empty logger name")
)

func (sl *SubLogger) stage(header, data string) {
	if sl == nil || sl.output == nil {
		return
	}
	fmt.Fprintf(sl.output, "%s %s %s %s\n",
		time.Now().Format(timestampFormat), header, sl.name, data)
}

// Info takes a pointer sublogger struct and a message and emits it at info
// level
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.info {
		return
	}
	sl.stage(infoHeader, data)
}

// Infof takes a pointer sublogger struct, a format string and arguments and
// emits them at info level
func Infof(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.info {
		return
	}
	sl.stage(infoHeader, fmt.Sprintf(data, v...))
}

// Warn takes a pointer sublogger struct and a message and emits it at warn
// level
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.warn {
		return
	}
	sl.stage(warnHeader, data)
}

// Warnf takes a pointer sublogger struct, a format string and arguments and
// emits them at warn level
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.warn {
		return
	}
	sl.stage(warnHeader, fmt.Sprintf(data, v...))
}

// Debug takes a pointer sublogger struct and a message and emits it at debug
// level
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.debug {
		return
	}
	sl.stage(debugHeader, data)
}

// Debugf takes a pointer sublogger struct, a format string and arguments and
// emits them at debug level
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.debug {
		return
	}
	sl.stage(debugHeader, fmt.Sprintf(data, v...))
}

// Error takes a pointer sublogger struct and a message and emits it at error
// level
func Error(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.error {
		return
	}
	sl.stage(errorHeader, data)
}

// Errorf takes a pointer sublogger struct, a format string and arguments and
// emits them at error level
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil || !sl.error {
		return
	}
	sl.stage(errorHeader, fmt.Sprintf(data, v...))
}
