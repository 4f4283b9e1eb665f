package telemetry

// decodeInstrument reads cabin/outside temperatures and the four wheel
// pressure/temperature slots from the instrument cluster.
//
// Wheel pressures arrive as scaled integers (394 means 39.4) and stay in the
// unit the cluster reports; downstream consumers interpret them through the
// pressure unit code. Wheel temperatures use a dual encoding: magnitudes
// below 100 are direct values, anything at or above 100 is scaled by ten
// (840 means 84.0). Both forms are then converted to Celsius.
func decodeInstrument(d DeviceData, units Units, m *Measurements) {
	m.OutsideTemp = ToCelsius(cleanNumber(d, "getOutCarTemperature"), units.Temperature)
	m.InsideTemp = ToCelsius(cleanNumber(d, "getInCarTemperature"), units.Temperature)

	m.TirePressureFL = tenths(cleanNested(d, "getWheelPressure(int)", "1"))
	m.TirePressureFR = tenths(cleanNested(d, "getWheelPressure(int)", "2"))
	m.TirePressureRL = tenths(cleanNested(d, "getWheelPressure(int)", "3"))
	m.TirePressureRR = tenths(cleanNested(d, "getWheelPressure(int)", "4"))

	m.TireTempFL = ToCelsius(tireTemp(cleanNested(d, "getWheelTemperature(int)", "1")), units.Temperature)
	m.TireTempFR = ToCelsius(tireTemp(cleanNested(d, "getWheelTemperature(int)", "2")), units.Temperature)
	m.TireTempRL = ToCelsius(tireTemp(cleanNested(d, "getWheelTemperature(int)", "3")), units.Temperature)
	m.TireTempRR = ToCelsius(tireTemp(cleanNested(d, "getWheelTemperature(int)", "4")), units.Temperature)
}

func tenths(v *float64) *float64 {
	if v == nil {
		return nil
	}
	scaled := *v / 10.0
	return &scaled
}

func tireTemp(v *float64) *float64 {
	if v == nil {
		return nil
	}
	val := *v
	if val >= 100 || val <= -100 {
		val = val / 10.0
	}
	return &val
}
