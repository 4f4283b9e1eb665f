package telemetry

// decodePosition reads the GPS fix. Coordinates are a pair: if only one of
// latitude/longitude survives filtering, both are dropped.
func decodePosition(loc *Location, m *Measurements) {
	if loc == nil {
		return
	}
	lat := cleanValue(loc.Latitude)
	lon := cleanValue(loc.Longitude)
	if lat == nil || lon == nil {
		lat, lon = nil, nil
	}
	m.Latitude = lat
	m.Longitude = lon
	m.Heading = cleanValue(loc.Heading)
	m.GPSAccuracy = cleanValue(loc.Accuracy)
}

func cleanValue(v *float64) *float64 {
	if v == nil || IsSentinel(*v) {
		return nil
	}
	val := *v
	return &val
}
