package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ditelemetry/internal/models"
)

type fakeVehicleStore struct {
	vehicles map[int64]*models.Vehicle
	nextID   int64
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{vehicles: map[int64]*models.Vehicle{}, nextID: 1}
}

func (s *fakeVehicleStore) Insert(_ context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = s.nextID
	s.nextID++
	copied := *vehicle
	s.vehicles[vehicle.ID] = &copied
	return nil
}

func (s *fakeVehicleStore) FindByID(_ context.Context, id int64) (*models.Vehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (s *fakeVehicleStore) List(_ context.Context, limit, offset int) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for id := int64(1); id < s.nextID; id++ {
		if v, ok := s.vehicles[id]; ok {
			out = append(out, *v)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeVehicleStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.vehicles)), nil
}

func (s *fakeVehicleStore) Update(_ context.Context, vehicle *models.Vehicle) error {
	copied := *vehicle
	s.vehicles[vehicle.ID] = &copied
	return nil
}

func (s *fakeVehicleStore) Delete(_ context.Context, id int64) error {
	delete(s.vehicles, id)
	return nil
}

func strp(v string) *string { return &v }

func TestVehicleCreateAndGet(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, VehicleInput{VIN: strp("LGXC74C48N0000001"), Model: strp("Atto 3")})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.VIN)
	assert.Equal(t, "LGXC74C48N0000001", *got.VIN)
}

func TestVehicleGetNotFound(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleStore())

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestVehicleUpdatePartial(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, VehicleInput{VIN: strp("VIN1"), Model: strp("Seal")})
	require.NoError(t, err)

	// only the model changes, the VIN stays
	updated, err := svc.Update(ctx, created.ID, VehicleInput{Model: strp("Seal AWD")})
	require.NoError(t, err)
	require.NotNil(t, updated.VIN)
	assert.Equal(t, "VIN1", *updated.VIN)
	require.NotNil(t, updated.Model)
	assert.Equal(t, "Seal AWD", *updated.Model)
}

func TestVehicleUpdateNotFound(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleStore())

	_, err := svc.Update(context.Background(), 404, VehicleInput{Model: strp("Seal")})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestVehicleDelete(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, VehicleInput{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrVehicleNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrVehicleNotFound)
}

func TestVehicleListPagination(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, VehicleInput{})
		require.NoError(t, err)
	}

	vehicles, total, err := svc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)
	assert.Equal(t, int64(5), total)

	vehicles, _, err = svc.List(ctx, 2, 4)
	require.NoError(t, err)
	assert.Len(t, vehicles, 1)

	// out-of-range limit falls back to the default
	vehicles, _, err = svc.List(ctx, -1, 0)
	require.NoError(t, err)
	assert.Len(t, vehicles, 5)
}
