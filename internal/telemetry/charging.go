package telemetry

// decodeCharging reads the charging device. The gun state is the one boolean
// on the bus where 2 means "connected" (1 means unplugged), unlike every
// other flag which encodes true as 1.
func decodeCharging(d DeviceData, powerUnit *int, m *Measurements) {
	m.IsCharging = asBool(cleanNumber(d, "getChargingState"), 1)
	m.ChargingGunConnected = asBool(cleanNumber(d, "getChargingGunState"), 2)
	m.ChargerPowerKw = ToKilowatts(cleanNumber(d, "getChargingPower"), powerUnit)
	// Cumulative energy is not exposed by this device generation; sessions
	// derive it from their data points instead.
	m.ChargeEnergyAdded = nil
}
