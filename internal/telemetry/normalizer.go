package telemetry

// Normalize turns a raw payload into canonical measurements. It is total:
// missing sections, malformed fields and sentinel codes all degrade to
// absent fields, never to an error.
//
// The unit table is resolved from the instrument section before any
// unit-dependent decoder runs; decoder order is otherwise irrelevant.
func Normalize(p Payload) Measurements {
	devices := p.Devices

	var m Measurements
	decodePosition(p.Location, &m)
	decodeSpeed(devices[DeviceSpeed], &m)
	decodeDrivetrain(devices[DeviceStatistic], &m)
	decodeGearbox(devices[DeviceGearbox], &m)

	units := DecodeUnits(devices[DeviceInstrument])
	decodeInstrument(devices[DeviceInstrument], units, &m)
	decodeClimate(devices[DeviceAC], units.Temperature, &m)
	decodeCharging(devices[DeviceCharging], units.Power, &m)

	decodeAirQuality(devices[DevicePM25], &m)
	return m
}
