package repository

import (
	"context"
	"database/sql"
	"errors"

	"ditelemetry/internal/models"
)

const sessionColumns = `
	id, vehicle_id, start_time, end_time,
	start_battery_level, end_battery_level,
	charge_energy_added, duration_min, outside_temp_avg,
	created_at, updated_at`

// ChargingRepository persists charging sessions and their data points.
type ChargingRepository struct {
	q DBTX
}

// NewChargingRepository returns repository.
func NewChargingRepository(q DBTX) *ChargingRepository {
	return &ChargingRepository{q: q}
}

// InsertSession opens a new session and fills its assigned id.
func (r *ChargingRepository) InsertSession(ctx context.Context, session *models.ChargingSession) error {
	const query = `
		INSERT INTO charging_sessions (vehicle_id, start_time, start_battery_level, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.q.QueryRowContext(ctx, query,
		session.VehicleID,
		session.StartTime,
		session.StartBatteryLevel,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
}

// FindOpenByVehicle returns the vehicle's open session or nil.
func (r *ChargingRepository) FindOpenByVehicle(ctx context.Context, vehicleID int64) (*models.ChargingSession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM charging_sessions
		WHERE vehicle_id = $1 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1`
	session, err := scanSession(r.q.QueryRowContext(ctx, query, vehicleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateSession rewrites the session's end stamps and aggregates.
func (r *ChargingRepository) UpdateSession(ctx context.Context, session *models.ChargingSession) error {
	const query = `
		UPDATE charging_sessions
		SET end_time = $2,
		    end_battery_level = $3,
		    charge_energy_added = $4,
		    duration_min = $5,
		    outside_temp_avg = $6,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.q.QueryRowContext(ctx, query,
		session.ID,
		session.EndTime,
		session.EndBatteryLevel,
		session.ChargeEnergyAdded,
		session.DurationMin,
		session.OutsideTempAvg,
	).Scan(&session.UpdatedAt)
}

// ListByVehicle returns the vehicle's sessions, newest first.
func (r *ChargingRepository) ListByVehicle(ctx context.Context, vehicleID int64, limit int) ([]models.ChargingSession, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + sessionColumns + `
		FROM charging_sessions
		WHERE vehicle_id = $1
		ORDER BY start_time DESC
		LIMIT $2`
	rows, err := r.q.QueryContext(ctx, query, vehicleID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.ChargingSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// InsertDataPoint appends a measurement to an open session.
func (r *ChargingRepository) InsertDataPoint(ctx context.Context, point *models.ChargingDataPoint) error {
	const query = `
		INSERT INTO charging_data_points (charging_session_id, recorded_at, battery_level, charge_energy_added, charger_power, outside_temp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.q.QueryRowContext(ctx, query,
		point.ChargingSessionID,
		point.RecordedAt,
		point.BatteryLevel,
		point.ChargeEnergyAdded,
		point.ChargerPower,
		point.OutsideTemp,
	).Scan(&point.ID)
}

// DataPointsBySession returns the session's data points, oldest first.
func (r *ChargingRepository) DataPointsBySession(ctx context.Context, sessionID int64) ([]models.ChargingDataPoint, error) {
	const query = `
		SELECT id, charging_session_id, recorded_at, battery_level, charge_energy_added, charger_power, outside_temp
		FROM charging_data_points
		WHERE charging_session_id = $1
		ORDER BY recorded_at ASC
	`
	rows, err := r.q.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.ChargingDataPoint
	for rows.Next() {
		var p models.ChargingDataPoint
		if err := rows.Scan(
			&p.ID,
			&p.ChargingSessionID,
			&p.RecordedAt,
			&p.BatteryLevel,
			&p.ChargeEnergyAdded,
			&p.ChargerPower,
			&p.OutsideTemp,
		); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func scanSession(row rowScanner) (*models.ChargingSession, error) {
	var s models.ChargingSession
	err := row.Scan(
		&s.ID,
		&s.VehicleID,
		&s.StartTime,
		&s.EndTime,
		&s.StartBatteryLevel,
		&s.EndBatteryLevel,
		&s.ChargeEnergyAdded,
		&s.DurationMin,
		&s.OutsideTempAvg,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
