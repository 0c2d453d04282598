package restapi

import (
	"time"
)

// StaleDetector decides whether a merged snapshot is too old to trust.
type StaleDetector struct {
	threshold time.Duration
}

func NewStaleDetector() *StaleDetector {
	return &StaleDetector{
		threshold: 15 * time.Minute,
	}
}

func (d *StaleDetector) WithThreshold(threshold time.Duration) *StaleDetector {
	d.threshold = threshold
	return d
}

// Check reports whether a snapshot produced at producedAt is stale. A zero
// producedAt means nothing was ever produced.
func (d *StaleDetector) Check(producedAt, currentTime time.Time) bool {
	if producedAt.IsZero() {
		return true
	}
	return d.Age(producedAt, currentTime) > d.threshold
}

// Age is how long ago producedAt was. It is 0 when nothing was produced;
// Check is what reports that case as stale.
func (d *StaleDetector) Age(producedAt, currentTime time.Time) time.Duration {
	if producedAt.IsZero() {
		return 0
	}
	return currentTime.Sub(producedAt)
}
