package repository

import (
	"context"
	"database/sql"
	"errors"

	"ditelemetry/internal/models"
)

// VehicleRepository handles persistence of registered vehicles.
type VehicleRepository struct {
	q DBTX
}

// NewVehicleRepository returns repository.
func NewVehicleRepository(q DBTX) *VehicleRepository {
	return &VehicleRepository{q: q}
}

// Insert stores a new vehicle and fills its id and timestamps.
func (r *VehicleRepository) Insert(ctx context.Context, vehicle *models.Vehicle) error {
	const query = `
		INSERT INTO vehicles (vin, model, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.q.QueryRowContext(ctx, query, vehicle.VIN, vehicle.Model).
		Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
}

// FindByID returns the vehicle or nil when it does not exist.
func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	const query = `
		SELECT id, vin, model, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`
	var v models.Vehicle
	err := r.q.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.VIN, &v.Model, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns a page of vehicles ordered by id.
func (r *VehicleRepository) List(ctx context.Context, limit, offset int) ([]models.Vehicle, error) {
	const query = `
		SELECT id, vin, model, created_at, updated_at
		FROM vehicles
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.q.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.VIN, &v.Model, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Count returns the number of registered vehicles.
func (r *VehicleRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Update rewrites the mutable vehicle fields.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	const query = `
		UPDATE vehicles
		SET vin = $2,
		    model = $3,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.q.QueryRowContext(ctx, query, vehicle.ID, vehicle.VIN, vehicle.Model).
		Scan(&vehicle.UpdatedAt)
}

// Delete removes the vehicle; child records follow via ON DELETE CASCADE.
func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
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
