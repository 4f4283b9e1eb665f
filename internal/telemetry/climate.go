package telemetry

// Canonical climate enum names.
const (
	CycleModeFresh  = "Fresh"
	CycleModeRecirc = "Recirc"
	ModeUnknown     = "Unknown"
)

var windModes = map[int]string{
	0: "Auto",
	1: "Face",
	2: "Face+Feet",
	3: "Feet",
	4: "Defrost+Feet",
	5: "Defrost",
	6: "Defrost+Face+Feet",
	7: "Defrost+Face",
}

// decodeClimate reads the AC device. Setpoint slot 1 is the driver side,
// slot 4 the passenger side. A missing passenger setpoint falls back to the
// driver value rather than staying absent; dual-zone cars without a passenger
// sensor mirror the driver setting.
func decodeClimate(d DeviceData, tempUnit *int, m *Measurements) {
	m.IsClimateOn = asBool(cleanNumber(d, "getAcStartState"), 1)

	driver := ToCelsius(cleanNested(d, "getTemprature(int)", "1"), tempUnit)
	passenger := ToCelsius(cleanNested(d, "getTemprature(int)", "4"), tempUnit)
	if passenger == nil {
		passenger = driver
	}
	m.DriverTempSetting = driver
	m.PassengerTempSetting = passenger

	m.FanLevel = cleanInt(d, "getAcWindLevel")
	m.WindMode = decodeWindMode(cleanNumber(d, "getAcWindMode"))
	m.CycleMode = decodeCycleMode(cleanNumber(d, "getAcCycleMode"))

	// Slot 2 of the defrost state is the rear window; the front state is not
	// reported by this device generation.
	m.IsRearDefrosterOn = asBool(cleanNested(d, "getAcDefrostState(int)", "2"), 1)
	m.IsFrontDefrosterOn = nil
}

func decodeWindMode(v *float64) *string {
	if v == nil {
		return nil
	}
	name, ok := windModes[int(*v)]
	if !ok {
		name = ModeUnknown
	}
	return &name
}

func decodeCycleMode(v *float64) *string {
	if v == nil {
		return nil
	}
	var name string
	switch int(*v) {
	case 0:
		name = CycleModeFresh
	case 1:
		name = CycleModeRecirc
	default:
		name = ModeUnknown
	}
	return &name
}
