package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubLogger(t *testing.T) {
	_, err := NewSubLogger("")
	assert.ErrorIs(t, err, errEmptyLoggerName)

	sl, err := NewSubLogger("testy")
	require.NoError(t, err)
	require.NotNil(t, sl)
	assert.Equal(t, "TESTY", sl.name)

	_, err = NewSubLogger("TESTY")
	assert.ErrorIs(t, err, ErrSubLoggerAlreadyRegistered)
}

func TestLevels(t *testing.T) {
	sl, err := NewSubLogger("levels")
	require.NoError(t, err)

	var buf bytes.Buffer
	sl.SetOutput(&buf)

	Debugf(sl, "should not appear %v", 1)
	assert.Empty(t, buf.String())

	Infof(sl, "executed order %v", 42)
	assert.Contains(t, buf.String(), "[INFO]")
	assert.Contains(t, buf.String(), "LEVELS")
	assert.Contains(t, buf.String(), "executed order 42")

	buf.Reset()
	sl.SetLevels(false, true, true, true)
	Info(sl, "muted")
	assert.Empty(t, buf.String())
	Warn(sl, "scaled order quantity")
	assert.Contains(t, buf.String(), "[WARN]")

	buf.Reset()
	Debug(sl, "drained queue")
	Error(sl, "no price available")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[DEBUG]")
	assert.Contains(t, lines[1], "[ERROR]")
}

func TestNilSubLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Info(nil, "nothing")
		Warnf(nil, "nothing %v", 1)
		Errorf(nil, "nothing %v", 2)
	})
}
