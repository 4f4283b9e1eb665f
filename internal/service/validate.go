package service

import (
	"time"

	"ditelemetry/internal/telemetry"
)

const maxGPSAccuracyMeters = 1000

// FreshnessWindow bounds how far a snapshot timestamp may lag behind or run
// ahead of processing time.
type FreshnessWindow struct {
	MaxPast   time.Duration
	MaxFuture time.Duration
}

// DefaultFreshnessWindow allows 24h of lag and 1h of clock skew.
func DefaultFreshnessWindow() FreshnessWindow {
	return FreshnessWindow{
		MaxPast:   24 * time.Hour,
		MaxFuture: time.Hour,
	}
}

func validateFreshness(ts, now time.Time, w FreshnessWindow) error {
	if now.Sub(ts) > w.MaxPast {
		return ErrStaleTimestamp
	}
	if ts.Sub(now) > w.MaxFuture {
		return ErrStaleTimestamp
	}
	return nil
}

func validateMeasurements(m telemetry.Measurements) error {
	if m.Latitude != nil && (*m.Latitude < -90 || *m.Latitude > 90) {
		return ErrInvalidCoordinates
	}
	if m.Longitude != nil && (*m.Longitude < -180 || *m.Longitude > 180) {
		return ErrInvalidCoordinates
	}
	if m.Heading != nil && (*m.Heading < 0 || *m.Heading > 360) {
		return ErrInvalidHeading
	}
	if m.GPSAccuracy != nil && (*m.GPSAccuracy < 0 || *m.GPSAccuracy > maxGPSAccuracyMeters) {
		return ErrInvalidAccuracy
	}
	return nil
}
