// Package event holds the fields shared by every event routed through the
// dispatch loop
package event

import "time"

// Handler is implemented by every event the dispatch loop routes
type Handler interface {
	GetTime() time.Time
	GetAsset() string
}

// Base carries the fields common to all event types
type Base struct {
	Time  time.Time
	Asset string
}

// GetTime returns the simulated time the event occurred at
func (b Base) GetTime() time.Time {
	return b.Time
}

// GetAsset returns the asset the event concerns
func (b Base) GetAsset() string {
	return b.Asset
}
