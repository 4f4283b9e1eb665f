package models

import "time"

// ChargingSession is one contiguous charging episode.
type ChargingSession struct {
	ID        int64      `db:"id" json:"id"`
	VehicleID int64      `db:"vehicle_id" json:"vehicle_id"`
	StartTime time.Time  `db:"start_time" json:"start_time"`
	EndTime   *time.Time `db:"end_time" json:"end_time,omitempty"`

	StartBatteryLevel *int `db:"start_battery_level" json:"start_battery_level,omitempty"`
	EndBatteryLevel   *int `db:"end_battery_level" json:"end_battery_level,omitempty"`

	ChargeEnergyAdded *float64 `db:"charge_energy_added" json:"charge_energy_added,omitempty"`
	DurationMin       *int     `db:"duration_min" json:"duration_min,omitempty"`
	OutsideTempAvg    *float64 `db:"outside_temp_avg" json:"outside_temp_avg,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Open reports whether the session is still in progress.
func (s *ChargingSession) Open() bool {
	return s.EndTime == nil
}

// ChargingDataPoint is one measurement taken while a session is open.
type ChargingDataPoint struct {
	ID                int64     `db:"id" json:"id"`
	ChargingSessionID int64     `db:"charging_session_id" json:"charging_session_id"`
	RecordedAt        time.Time `db:"recorded_at" json:"recorded_at"`

	BatteryLevel      *int     `db:"battery_level" json:"battery_level,omitempty"`
	ChargeEnergyAdded *float64 `db:"charge_energy_added" json:"charge_energy_added,omitempty"`
	ChargerPower      *float64 `db:"charger_power" json:"charger_power,omitempty"`
	OutsideTemp       *float64 `db:"outside_temp" json:"outside_temp,omitempty"`
}
