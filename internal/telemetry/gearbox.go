package telemetry

// Canonical gear positions.
const (
	GearPark    = "Park"
	GearReverse = "Reverse"
	GearNeutral = "Neutral"
	GearDrive   = "Drive"
	GearSport   = "Sport"
	GearManual  = "Manual"
	GearUnknown = "Unknown"
)

var gearNames = map[int]string{
	1: GearPark,
	2: GearReverse,
	3: GearNeutral,
	4: GearDrive,
	5: GearSport,
	6: GearManual,
}

// IsDrivingGear reports whether the gear indicates the vehicle is in motion
// readiness, i.e. anything engaged other than Park.
func IsDrivingGear(gear string) bool {
	switch gear {
	case GearDrive, GearNeutral, GearReverse, GearSport, GearManual:
		return true
	}
	return false
}

func decodeGearbox(d DeviceData, m *Measurements) {
	v := cleanNumber(d, "getGearboxAutoModeType")
	if v == nil {
		return
	}
	name, ok := gearNames[int(*v)]
	if !ok {
		name = GearUnknown
	}
	m.Gear = &name
}
