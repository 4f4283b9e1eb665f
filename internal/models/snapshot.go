package models

import "time"

// Snapshot is one normalized, timestamped measurement record for a vehicle
// (persisted in the positions table). Nil means the sensor reported nothing
// usable for that field.
type Snapshot struct {
	ID         int64     `db:"id" json:"id"`
	VehicleID  int64     `db:"vehicle_id" json:"vehicle_id"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`

	Latitude    *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude   *float64 `db:"longitude" json:"longitude,omitempty"`
	Heading     *float64 `db:"heading" json:"heading,omitempty"`
	GPSAccuracy *float64 `db:"gps_accuracy" json:"gps_accuracy,omitempty"`

	Speed          *float64 `db:"speed" json:"speed,omitempty"`
	OdometerKm     *float64 `db:"odometer_km" json:"odometer_km,omitempty"`
	BatteryLevel   *int     `db:"battery_level" json:"battery_level,omitempty"`
	BatteryRangeKm *float64 `db:"battery_range_km" json:"battery_range_km,omitempty"`
	OutsideTemp    *float64 `db:"outside_temp" json:"outside_temp,omitempty"`
	InsideTemp     *float64 `db:"inside_temp" json:"inside_temp,omitempty"`
	PowerKw        *float64 `db:"power_kw" json:"power_kw,omitempty"`

	IsClimateOn          *bool    `db:"is_climate_on" json:"is_climate_on,omitempty"`
	DriverTempSetting    *float64 `db:"driver_temp_setting" json:"driver_temp_setting,omitempty"`
	PassengerTempSetting *float64 `db:"passenger_temp_setting" json:"passenger_temp_setting,omitempty"`
	IsRearDefrosterOn    *bool    `db:"is_rear_defroster_on" json:"is_rear_defroster_on,omitempty"`
	IsFrontDefrosterOn   *bool    `db:"is_front_defroster_on" json:"is_front_defroster_on,omitempty"`

	GearPosition *string `db:"gear_position" json:"gear_position,omitempty"`
	FanLevel     *int    `db:"fan_level" json:"fan_level,omitempty"`
	WindMode     *string `db:"wind_mode" json:"wind_mode,omitempty"`
	CycleMode    *string `db:"cycle_mode" json:"cycle_mode,omitempty"`

	TirePressureFL *float64 `db:"tire_pressure_fl" json:"tire_pressure_fl,omitempty"`
	TirePressureFR *float64 `db:"tire_pressure_fr" json:"tire_pressure_fr,omitempty"`
	TirePressureRL *float64 `db:"tire_pressure_rl" json:"tire_pressure_rl,omitempty"`
	TirePressureRR *float64 `db:"tire_pressure_rr" json:"tire_pressure_rr,omitempty"`
	TireTempFL     *float64 `db:"tire_temp_fl" json:"tire_temp_fl,omitempty"`
	TireTempFR     *float64 `db:"tire_temp_fr" json:"tire_temp_fr,omitempty"`
	TireTempRL     *float64 `db:"tire_temp_rl" json:"tire_temp_rl,omitempty"`
	TireTempRR     *float64 `db:"tire_temp_rr" json:"tire_temp_rr,omitempty"`

	PM25Inside  *int `db:"pm25_inside" json:"pm25_inside,omitempty"`
	PM25Outside *int `db:"pm25_outside" json:"pm25_outside,omitempty"`

	DriveID *int64 `db:"drive_id" json:"drive_id,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
