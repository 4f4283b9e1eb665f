package telemetry

func decodeSpeed(d DeviceData, m *Measurements) {
	m.Speed = cleanNumber(d, "getCurrentSpeed")
}

// decodeDrivetrain reads the statistic device: odometer, state of charge and
// remaining electric range.
func decodeDrivetrain(d DeviceData, m *Measurements) {
	m.OdometerKm = cleanNumber(d, "getTotalMileageValue")
	m.BatteryLevel = cleanInt(d, "getSOCBatteryPercentage")
	m.BatteryRangeKm = cleanNumber(d, "getElecDrivingRangeValue")
}
