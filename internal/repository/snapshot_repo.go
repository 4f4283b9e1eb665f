package repository

import (
	"context"
	"database/sql"
	"errors"

	"ditelemetry/internal/models"
)

const snapshotColumns = `
	id, vehicle_id, recorded_at,
	latitude, longitude, heading, gps_accuracy,
	speed, odometer_km, battery_level, battery_range_km,
	outside_temp, inside_temp, power_kw,
	is_climate_on, driver_temp_setting, passenger_temp_setting,
	is_rear_defroster_on, is_front_defroster_on,
	gear_position, fan_level, wind_mode, cycle_mode,
	tire_pressure_fl, tire_pressure_fr, tire_pressure_rl, tire_pressure_rr,
	tire_temp_fl, tire_temp_fr, tire_temp_rl, tire_temp_rr,
	pm25_inside, pm25_outside, drive_id, created_at`

// SnapshotRepository persists normalized measurement records.
type SnapshotRepository struct {
	q DBTX
}

// NewSnapshotRepository returns repository.
func NewSnapshotRepository(q DBTX) *SnapshotRepository {
	return &SnapshotRepository{q: q}
}

// Insert stores a snapshot and fills its assigned id.
func (r *SnapshotRepository) Insert(ctx context.Context, snap *models.Snapshot) error {
	const query = `
		INSERT INTO positions (
			vehicle_id, recorded_at,
			latitude, longitude, heading, gps_accuracy,
			speed, odometer_km, battery_level, battery_range_km,
			outside_temp, inside_temp, power_kw,
			is_climate_on, driver_temp_setting, passenger_temp_setting,
			is_rear_defroster_on, is_front_defroster_on,
			gear_position, fan_level, wind_mode, cycle_mode,
			tire_pressure_fl, tire_pressure_fr, tire_pressure_rl, tire_pressure_rr,
			tire_temp_fl, tire_temp_fr, tire_temp_rl, tire_temp_rr,
			pm25_inside, pm25_outside, drive_id, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, NOW()
		)
		RETURNING id, created_at
	`
	return r.q.QueryRowContext(ctx, query,
		snap.VehicleID,
		snap.RecordedAt,
		snap.Latitude,
		snap.Longitude,
		snap.Heading,
		snap.GPSAccuracy,
		snap.Speed,
		snap.OdometerKm,
		snap.BatteryLevel,
		snap.BatteryRangeKm,
		snap.OutsideTemp,
		snap.InsideTemp,
		snap.PowerKw,
		snap.IsClimateOn,
		snap.DriverTempSetting,
		snap.PassengerTempSetting,
		snap.IsRearDefrosterOn,
		snap.IsFrontDefrosterOn,
		snap.GearPosition,
		snap.FanLevel,
		snap.WindMode,
		snap.CycleMode,
		snap.TirePressureFL,
		snap.TirePressureFR,
		snap.TirePressureRL,
		snap.TirePressureRR,
		snap.TireTempFL,
		snap.TireTempFR,
		snap.TireTempRL,
		snap.TireTempRR,
		snap.PM25Inside,
		snap.PM25Outside,
		snap.DriveID,
	).Scan(&snap.ID, &snap.CreatedAt)
}

// FindByDrive returns every snapshot attached to the drive, oldest first.
func (r *SnapshotRepository) FindByDrive(ctx context.Context, driveID int64) ([]models.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM positions
		WHERE drive_id = $1
		ORDER BY recorded_at ASC`
	rows, err := r.q.QueryContext(ctx, query, driveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []models.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snaps, nil
}

// FindLatestByVehicle returns the vehicle's most recent snapshot or nil.
func (r *SnapshotRepository) FindLatestByVehicle(ctx context.Context, vehicleID int64) (*models.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM positions
		WHERE vehicle_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1`
	snap, err := scanSnapshot(r.q.QueryRowContext(ctx, query, vehicleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*models.Snapshot, error) {
	var s models.Snapshot
	err := row.Scan(
		&s.ID,
		&s.VehicleID,
		&s.RecordedAt,
		&s.Latitude,
		&s.Longitude,
		&s.Heading,
		&s.GPSAccuracy,
		&s.Speed,
		&s.OdometerKm,
		&s.BatteryLevel,
		&s.BatteryRangeKm,
		&s.OutsideTemp,
		&s.InsideTemp,
		&s.PowerKw,
		&s.IsClimateOn,
		&s.DriverTempSetting,
		&s.PassengerTempSetting,
		&s.IsRearDefrosterOn,
		&s.IsFrontDefrosterOn,
		&s.GearPosition,
		&s.FanLevel,
		&s.WindMode,
		&s.CycleMode,
		&s.TirePressureFL,
		&s.TirePressureFR,
		&s.TirePressureRL,
		&s.TirePressureRR,
		&s.TireTempFL,
		&s.TireTempFR,
		&s.TireTempRL,
		&s.TireTempRR,
		&s.PM25Inside,
		&s.PM25Outside,
		&s.DriveID,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
