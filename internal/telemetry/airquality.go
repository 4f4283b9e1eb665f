package telemetry

// decodeAirQuality reads the particulate sensor. The payload is an ordered
// two-element array [inside, outside]; anything else leaves both absent.
func decodeAirQuality(d DeviceData, m *Measurements) {
	values, ok := d["getPM2p5Value"].([]any)
	if !ok || len(values) < 2 {
		return
	}
	m.PM25Inside = cleanIndexed(values, 0)
	m.PM25Outside = cleanIndexed(values, 1)
}

func cleanIndexed(values []any, i int) *int {
	v, ok := asNumber(values[i])
	if !ok || IsSentinel(v) {
		return nil
	}
	n := int(v)
	return &n
}
