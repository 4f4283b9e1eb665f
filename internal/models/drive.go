package models

import "time"

// Drive is one contiguous driving episode. All aggregate fields stay nil
// while the drive is open and are filled in a single batch at close.
type Drive struct {
	ID        int64      `db:"id" json:"id"`
	VehicleID int64      `db:"vehicle_id" json:"vehicle_id"`
	StartTime time.Time  `db:"start_time" json:"start_time"`
	EndTime   *time.Time `db:"end_time" json:"end_time,omitempty"`

	StartPositionID *int64 `db:"start_position_id" json:"start_position_id,omitempty"`
	EndPositionID   *int64 `db:"end_position_id" json:"end_position_id,omitempty"`

	DistanceKm  *float64 `db:"distance_km" json:"distance_km,omitempty"`
	DurationMin *int     `db:"duration_min" json:"duration_min,omitempty"`
	SpeedMax    *float64 `db:"speed_max" json:"speed_max,omitempty"`
	PowerMax    *float64 `db:"power_max" json:"power_max,omitempty"`
	PowerMin    *float64 `db:"power_min" json:"power_min,omitempty"`
	PowerAvg    *int     `db:"power_avg" json:"power_avg,omitempty"`

	StartKm             *float64 `db:"start_km" json:"start_km,omitempty"`
	EndKm               *float64 `db:"end_km" json:"end_km,omitempty"`
	StartBatteryRangeKm *float64 `db:"start_battery_range_km" json:"start_battery_range_km,omitempty"`
	EndBatteryRangeKm   *float64 `db:"end_battery_range_km" json:"end_battery_range_km,omitempty"`

	OutsideTempAvg *float64 `db:"outside_temp_avg" json:"outside_temp_avg,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Open reports whether the drive is still in progress.
func (d *Drive) Open() bool {
	return d.EndTime == nil
}
