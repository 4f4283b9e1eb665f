package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestDecodeUnits(t *testing.T) {
	units := DecodeUnits(DeviceData{
		"getUnit(int)": map[string]any{"1": 2.0, "2": 3.0, "4": 1.0},
	})

	require.NotNil(t, units.Temperature)
	assert.Equal(t, 2, *units.Temperature)
	require.NotNil(t, units.Pressure)
	assert.Equal(t, 3, *units.Pressure)
	require.NotNil(t, units.Power)
	assert.Equal(t, 1, *units.Power)
}

func TestDecodeUnitsMissingTable(t *testing.T) {
	units := DecodeUnits(nil)
	assert.Nil(t, units.Temperature)
	assert.Nil(t, units.Pressure)
	assert.Nil(t, units.Power)
}

func TestToCelsius(t *testing.T) {
	// unit 1 is already Celsius
	got := ToCelsius(f(21.5), intp(1))
	require.NotNil(t, got)
	assert.Equal(t, 21.5, *got)

	// unit 2 is Fahrenheit
	got = ToCelsius(f(212.0), intp(2))
	require.NotNil(t, got)
	assert.InDelta(t, 100.0, *got, 0.01)

	got = ToCelsius(f(-40.0), intp(2))
	require.NotNil(t, got)
	assert.InDelta(t, -40.0, *got, 0.01)

	// no unit table means no conversion
	got = ToCelsius(f(25.0), nil)
	require.NotNil(t, got)
	assert.Equal(t, 25.0, *got)

	// unknown unit passes through
	got = ToCelsius(f(25.0), intp(99))
	require.NotNil(t, got)
	assert.Equal(t, 25.0, *got)

	assert.Nil(t, ToCelsius(nil, intp(2)))
}

func TestToKilowatts(t *testing.T) {
	got := ToKilowatts(f(100.0), intp(2))
	require.NotNil(t, got)
	assert.InDelta(t, 74.57, *got, 0.001)

	got = ToKilowatts(f(50.0), intp(1))
	require.NotNil(t, got)
	assert.Equal(t, 50.0, *got)

	assert.Nil(t, ToKilowatts(nil, intp(2)))
}

func TestToBar(t *testing.T) {
	// psi
	got := ToBar(f(14.5038), intp(2))
	require.NotNil(t, got)
	assert.InDelta(t, 1.0, *got, 0.001)

	// kPa
	got = ToBar(f(250.0), intp(3))
	require.NotNil(t, got)
	assert.InDelta(t, 2.5, *got, 0.001)

	// canonical
	got = ToBar(f(2.4), intp(1))
	require.NotNil(t, got)
	assert.Equal(t, 2.4, *got)

	assert.Nil(t, ToBar(nil, intp(3)))
}
