package telemetry

// Unit codes from the instrument cluster's unit table. Code 1 is always the
// canonical unit (Celsius / kW / bar); unknown codes pass through unchanged.
const (
	unitFahrenheit = 2
	unitHorsepower = 2
	unitPSI        = 2
	unitKPa        = 3
)

const hpToKw = 0.7457

// Units describes which physical units the current payload reports in.
// Extracted once per payload from the instrument device and threaded into
// every unit-dependent decoder.
type Units struct {
	Temperature *int
	Pressure    *int
	Power       *int
}

// DecodeUnits reads the indexed unit table from the instrument section.
// Index 1 is temperature, 2 pressure, 4 power; the rest are unused.
func DecodeUnits(d DeviceData) Units {
	return Units{
		Temperature: ptrInt(cleanNested(d, "getUnit(int)", "1")),
		Pressure:    ptrInt(cleanNested(d, "getUnit(int)", "2")),
		Power:       ptrInt(cleanNested(d, "getUnit(int)", "4")),
	}
}

// ToCelsius converts a temperature reading to Celsius according to the unit
// code. Absent value stays absent; unknown unit passes through.
func ToCelsius(value *float64, unit *int) *float64 {
	if value == nil {
		return nil
	}
	if unit != nil && *unit == unitFahrenheit {
		c := (*value - 32.0) * 5.0 / 9.0
		return &c
	}
	v := *value
	return &v
}

// ToKilowatts converts a power reading to kW according to the unit code.
func ToKilowatts(value *float64, unit *int) *float64 {
	if value == nil {
		return nil
	}
	if unit != nil && *unit == unitHorsepower {
		kw := *value * hpToKw
		return &kw
	}
	v := *value
	return &v
}

// ToBar converts a pressure reading to bar according to the unit code.
func ToBar(value *float64, unit *int) *float64 {
	if value == nil {
		return nil
	}
	if unit != nil {
		switch *unit {
		case unitPSI:
			bar := *value / 14.5038
			return &bar
		case unitKPa:
			bar := *value / 100.0
			return &bar
		}
	}
	v := *value
	return &v
}

func ptrInt(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
