package service

import (
	"context"

	"ditelemetry/internal/models"
)

// VehicleService is the registry behind the vehicle CRUD API.
type VehicleService struct {
	store VehicleStore
}

// VehicleInput carries the mutable vehicle fields; nil leaves a field as is.
type VehicleInput struct {
	VIN   *string
	Model *string
}

// NewVehicleService builds the service.
func NewVehicleService(store VehicleStore) *VehicleService {
	return &VehicleService{store: store}
}

// Create registers a vehicle.
func (s *VehicleService) Create(ctx context.Context, input VehicleInput) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{
		VIN:   input.VIN,
		Model: input.Model,
	}
	if err := s.store.Insert(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Get returns one vehicle.
func (s *VehicleService) Get(ctx context.Context, id int64) (*models.Vehicle, error) {
	vehicle, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	return vehicle, nil
}

// List returns a page of vehicles plus the total count.
func (s *VehicleService) List(ctx context.Context, limit, offset int) ([]models.Vehicle, int64, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	vehicles, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// Update applies the provided fields to a vehicle.
func (s *VehicleService) Update(ctx context.Context, id int64, input VehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	if input.VIN != nil {
		vehicle.VIN = input.VIN
	}
	if input.Model != nil {
		vehicle.Model = input.Model
	}
	if err := s.store.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Delete removes a vehicle and, through the store's ownership rules, its
// snapshots, drives and charging sessions.
func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	vehicle, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return ErrVehicleNotFound
	}
	return s.store.Delete(ctx, id)
}
