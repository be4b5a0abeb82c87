package exchange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlwaysOpen(t *testing.T) {
	t.Parallel()
	var v AlwaysOpen
	assert.True(t, v.IsOpenAt(time.Date(2020, 1, 4, 3, 0, 0, 0, time.UTC)))
	assert.True(t, v.IsOpenAt(time.Time{}))
}

func TestEquityVenue(t *testing.T) {
	t.Parallel()
	var v Equity

	// Monday session bounds
	assert.False(t, v.IsOpenAt(time.Date(2020, 1, 6, 14, 29, 0, 0, time.UTC)))
	assert.True(t, v.IsOpenAt(time.Date(2020, 1, 6, 14, 30, 0, 0, time.UTC)))
	assert.True(t, v.IsOpenAt(time.Date(2020, 1, 6, 17, 0, 0, 0, time.UTC)))
	assert.True(t, v.IsOpenAt(time.Date(2020, 1, 6, 21, 0, 0, 0, time.UTC)))
	assert.False(t, v.IsOpenAt(time.Date(2020, 1, 6, 21, 1, 0, 0, time.UTC)))

	// Saturday
	assert.False(t, v.IsOpenAt(time.Date(2020, 1, 4, 15, 0, 0, 0, time.UTC)))
}
