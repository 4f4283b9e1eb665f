package telemetry

// Measurements is the canonical, unit-normalized view of one payload.
// Every field is either a well-formed value in canonical units or nil;
// sentinel codes never survive decoding.
type Measurements struct {
	// Position
	Latitude    *float64
	Longitude   *float64
	Heading     *float64
	GPSAccuracy *float64

	// Powertrain
	Speed          *float64 // km/h
	OdometerKm     *float64
	BatteryLevel   *int // percent
	BatteryRangeKm *float64
	OutsideTemp    *float64 // Celsius
	InsideTemp     *float64 // Celsius
	PowerKw        *float64

	// Gearbox
	Gear *string

	// Cabin climate
	IsClimateOn          *bool
	DriverTempSetting    *float64 // Celsius
	PassengerTempSetting *float64 // Celsius
	FanLevel             *int
	WindMode             *string
	CycleMode            *string
	IsRearDefrosterOn    *bool
	IsFrontDefrosterOn   *bool

	// Chassis; pressures stay in the reported unit, temperatures are Celsius
	TirePressureFL *float64
	TirePressureFR *float64
	TirePressureRL *float64
	TirePressureRR *float64
	TireTempFL     *float64
	TireTempFR     *float64
	TireTempRL     *float64
	TireTempRR     *float64

	// Air quality
	PM25Inside  *int
	PM25Outside *int

	// Charging; consumed by the episode tracker, not persisted on positions
	IsCharging           *bool
	ChargingGunConnected *bool
	ChargerPowerKw       *float64
	ChargeEnergyAdded    *float64 // kWh, cumulative
}
