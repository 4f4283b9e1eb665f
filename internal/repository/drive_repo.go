package repository

import (
	"context"
	"database/sql"
	"errors"

	"ditelemetry/internal/models"
)

const driveColumns = `
	id, vehicle_id, start_time, end_time,
	start_position_id, end_position_id,
	distance_km, duration_min, speed_max,
	power_max, power_min, power_avg,
	start_km, end_km, start_battery_range_km, end_battery_range_km,
	outside_temp_avg, created_at, updated_at`

// DriveRepository persists driving episodes.
type DriveRepository struct {
	q DBTX
}

// NewDriveRepository returns repository.
func NewDriveRepository(q DBTX) *DriveRepository {
	return &DriveRepository{q: q}
}

// Insert opens a new drive and fills its assigned id.
func (r *DriveRepository) Insert(ctx context.Context, drive *models.Drive) error {
	const query = `
		INSERT INTO drives (vehicle_id, start_time, start_km, start_battery_range_km, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.q.QueryRowContext(ctx, query,
		drive.VehicleID,
		drive.StartTime,
		drive.StartKm,
		drive.StartBatteryRangeKm,
	).Scan(&drive.ID, &drive.CreatedAt, &drive.UpdatedAt)
}

// FindOpenByVehicle returns the vehicle's open drive or nil.
func (r *DriveRepository) FindOpenByVehicle(ctx context.Context, vehicleID int64) (*models.Drive, error) {
	query := `SELECT ` + driveColumns + `
		FROM drives
		WHERE vehicle_id = $1 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1`
	drive, err := scanDrive(r.q.QueryRowContext(ctx, query, vehicleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return drive, nil
}

// Update rewrites the drive's end stamps and aggregates in one batch.
func (r *DriveRepository) Update(ctx context.Context, drive *models.Drive) error {
	const query = `
		UPDATE drives
		SET end_time = $2,
		    start_position_id = $3,
		    end_position_id = $4,
		    distance_km = $5,
		    duration_min = $6,
		    speed_max = $7,
		    power_max = $8,
		    power_min = $9,
		    power_avg = $10,
		    start_km = $11,
		    end_km = $12,
		    start_battery_range_km = $13,
		    end_battery_range_km = $14,
		    outside_temp_avg = $15,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.q.QueryRowContext(ctx, query,
		drive.ID,
		drive.EndTime,
		drive.StartPositionID,
		drive.EndPositionID,
		drive.DistanceKm,
		drive.DurationMin,
		drive.SpeedMax,
		drive.PowerMax,
		drive.PowerMin,
		drive.PowerAvg,
		drive.StartKm,
		drive.EndKm,
		drive.StartBatteryRangeKm,
		drive.EndBatteryRangeKm,
		drive.OutsideTempAvg,
	).Scan(&drive.UpdatedAt)
}

// SetStartPosition patches the drive's first-position reference once the
// opening snapshot has an id.
func (r *DriveRepository) SetStartPosition(ctx context.Context, driveID, positionID int64) error {
	const query = `
		UPDATE drives
		SET start_position_id = $2,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.q.ExecContext(ctx, query, driveID, positionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByVehicle returns the vehicle's drives, newest first.
func (r *DriveRepository) ListByVehicle(ctx context.Context, vehicleID int64, limit int) ([]models.Drive, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + driveColumns + `
		FROM drives
		WHERE vehicle_id = $1
		ORDER BY start_time DESC
		LIMIT $2`
	rows, err := r.q.QueryContext(ctx, query, vehicleID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drives []models.Drive
	for rows.Next() {
		drive, err := scanDrive(rows)
		if err != nil {
			return nil, err
		}
		drives = append(drives, *drive)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return drives, nil
}

func scanDrive(row rowScanner) (*models.Drive, error) {
	var d models.Drive
	err := row.Scan(
		&d.ID,
		&d.VehicleID,
		&d.StartTime,
		&d.EndTime,
		&d.StartPositionID,
		&d.EndPositionID,
		&d.DistanceKm,
		&d.DurationMin,
		&d.SpeedMax,
		&d.PowerMax,
		&d.PowerMin,
		&d.PowerAvg,
		&d.StartKm,
		&d.EndKm,
		&d.StartBatteryRangeKm,
		&d.EndBatteryRangeKm,
		&d.OutsideTempAvg,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
