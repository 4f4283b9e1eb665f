package service

import "errors"

// Caller-correctable rejection conditions. Anything else returned by the
// services is an internal failure.
var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrStaleTimestamp     = errors.New("timestamp outside freshness window")
	ErrInvalidCoordinates = errors.New("gps coordinates out of range")
	ErrInvalidHeading     = errors.New("heading out of range")
	ErrInvalidAccuracy    = errors.New("gps accuracy out of range")
)
