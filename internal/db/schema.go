package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema bootstrap. Statements are idempotent so the service can apply them
// on every start. The partial unique indexes back the "at most one open
// drive/charging session per vehicle" invariant at the store level.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS vehicles (
		id          SERIAL PRIMARY KEY,
		vin         VARCHAR(50) UNIQUE,
		model       VARCHAR(100),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS drives (
		id                     BIGSERIAL PRIMARY KEY,
		vehicle_id             INTEGER NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		start_time             TIMESTAMPTZ NOT NULL,
		end_time               TIMESTAMPTZ,
		start_position_id      BIGINT,
		end_position_id        BIGINT,
		distance_km            DOUBLE PRECISION,
		duration_min           INTEGER,
		speed_max              DOUBLE PRECISION,
		power_max              DOUBLE PRECISION,
		power_min              DOUBLE PRECISION,
		power_avg              INTEGER,
		start_km               DOUBLE PRECISION,
		end_km                 DOUBLE PRECISION,
		start_battery_range_km DOUBLE PRECISION,
		end_battery_range_km   DOUBLE PRECISION,
		outside_temp_avg       DOUBLE PRECISION,
		created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS positions (
		id                     BIGSERIAL PRIMARY KEY,
		vehicle_id             INTEGER NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		recorded_at            TIMESTAMPTZ NOT NULL,
		latitude               DOUBLE PRECISION,
		longitude              DOUBLE PRECISION,
		heading                DOUBLE PRECISION,
		gps_accuracy           DOUBLE PRECISION,
		speed                  DOUBLE PRECISION,
		odometer_km            DOUBLE PRECISION,
		battery_level          SMALLINT,
		battery_range_km       DOUBLE PRECISION,
		outside_temp           DOUBLE PRECISION,
		inside_temp            DOUBLE PRECISION,
		power_kw               DOUBLE PRECISION,
		is_climate_on          BOOLEAN,
		driver_temp_setting    DOUBLE PRECISION,
		passenger_temp_setting DOUBLE PRECISION,
		is_rear_defroster_on   BOOLEAN,
		is_front_defroster_on  BOOLEAN,
		gear_position          VARCHAR(10),
		fan_level              SMALLINT,
		wind_mode              VARCHAR(20),
		cycle_mode             VARCHAR(10),
		tire_pressure_fl       DOUBLE PRECISION,
		tire_pressure_fr       DOUBLE PRECISION,
		tire_pressure_rl       DOUBLE PRECISION,
		tire_pressure_rr       DOUBLE PRECISION,
		tire_temp_fl           DOUBLE PRECISION,
		tire_temp_fr           DOUBLE PRECISION,
		tire_temp_rl           DOUBLE PRECISION,
		tire_temp_rr           DOUBLE PRECISION,
		pm25_inside            SMALLINT,
		pm25_outside           SMALLINT,
		drive_id               BIGINT REFERENCES drives(id) ON DELETE SET NULL,
		created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS charging_sessions (
		id                  BIGSERIAL PRIMARY KEY,
		vehicle_id          INTEGER NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		start_time          TIMESTAMPTZ NOT NULL,
		end_time            TIMESTAMPTZ,
		start_battery_level SMALLINT,
		end_battery_level   SMALLINT,
		charge_energy_added DOUBLE PRECISION,
		duration_min        INTEGER,
		outside_temp_avg    DOUBLE PRECISION,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS charging_data_points (
		id                  BIGSERIAL PRIMARY KEY,
		charging_session_id BIGINT NOT NULL REFERENCES charging_sessions(id) ON DELETE CASCADE,
		recorded_at         TIMESTAMPTZ NOT NULL,
		battery_level       SMALLINT,
		charge_energy_added DOUBLE PRECISION,
		charger_power       DOUBLE PRECISION,
		outside_temp        DOUBLE PRECISION
	)`,
	`CREATE INDEX IF NOT EXISTS idx_positions_vehicle_time ON positions (vehicle_id, recorded_at)`,
	`CREATE INDEX IF NOT EXISTS idx_positions_drive ON positions (drive_id)`,
	`CREATE INDEX IF NOT EXISTS idx_drives_vehicle_start ON drives (vehicle_id, start_time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_charging_vehicle_start ON charging_sessions (vehicle_id, start_time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_data_points_session ON charging_data_points (charging_session_id, recorded_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_open_drive_per_vehicle ON drives (vehicle_id) WHERE end_time IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_open_charge_per_vehicle ON charging_sessions (vehicle_id) WHERE end_time IS NULL`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, pool *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db: apply schema: %w", err)
		}
	}
	return nil
}
