package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ditelemetry/internal/models"
	"ditelemetry/internal/service"
)

// Store implements service.TelemetryStore over Postgres. Every telemetry
// submission runs through RunInTx so its episode writes and snapshot insert
// commit or roll back together.
type Store struct {
	db        *sql.DB
	vehicles  *VehicleRepository
	snapshots *SnapshotRepository
	drives    *DriveRepository
	charging  *ChargingRepository
}

// NewStore builds the store over a live connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		vehicles:  NewVehicleRepository(db),
		snapshots: NewSnapshotRepository(db),
		drives:    NewDriveRepository(db),
		charging:  NewChargingRepository(db),
	}
}

// Vehicles exposes the registry repository for the CRUD service.
func (s *Store) Vehicles() *VehicleRepository {
	return s.vehicles
}

func (s *Store) FindVehicle(ctx context.Context, id int64) (*models.Vehicle, error) {
	return s.vehicles.FindByID(ctx, id)
}

func (s *Store) LatestSnapshot(ctx context.Context, vehicleID int64) (*models.Snapshot, error) {
	return s.snapshots.FindLatestByVehicle(ctx, vehicleID)
}

func (s *Store) DrivesByVehicle(ctx context.Context, vehicleID int64, limit int) ([]models.Drive, error) {
	return s.drives.ListByVehicle(ctx, vehicleID, limit)
}

func (s *Store) ChargingSessionsByVehicle(ctx context.Context, vehicleID int64, limit int) ([]models.ChargingSession, error) {
	return s.charging.ListByVehicle(ctx, vehicleID, limit)
}

// RunInTx executes fn inside one transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(tx service.TelemetryTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	wrapped := &storeTx{
		snapshots: NewSnapshotRepository(tx),
		drives:    NewDriveRepository(tx),
		charging:  NewChargingRepository(tx),
	}

	if err := fn(wrapped); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// storeTx is the transaction-scoped slice of the store.
type storeTx struct {
	snapshots *SnapshotRepository
	drives    *DriveRepository
	charging  *ChargingRepository
}

func (t *storeTx) InsertSnapshot(ctx context.Context, snap *models.Snapshot) error {
	return t.snapshots.Insert(ctx, snap)
}

func (t *storeTx) SnapshotsByDrive(ctx context.Context, driveID int64) ([]models.Snapshot, error) {
	return t.snapshots.FindByDrive(ctx, driveID)
}

func (t *storeTx) OpenDrive(ctx context.Context, vehicleID int64) (*models.Drive, error) {
	return t.drives.FindOpenByVehicle(ctx, vehicleID)
}

func (t *storeTx) InsertDrive(ctx context.Context, drive *models.Drive) error {
	return t.drives.Insert(ctx, drive)
}

func (t *storeTx) UpdateDrive(ctx context.Context, drive *models.Drive) error {
	return t.drives.Update(ctx, drive)
}

func (t *storeTx) SetDriveStartPosition(ctx context.Context, driveID, positionID int64) error {
	return t.drives.SetStartPosition(ctx, driveID, positionID)
}

func (t *storeTx) OpenChargingSession(ctx context.Context, vehicleID int64) (*models.ChargingSession, error) {
	return t.charging.FindOpenByVehicle(ctx, vehicleID)
}

func (t *storeTx) InsertChargingSession(ctx context.Context, session *models.ChargingSession) error {
	return t.charging.InsertSession(ctx, session)
}

func (t *storeTx) UpdateChargingSession(ctx context.Context, session *models.ChargingSession) error {
	return t.charging.UpdateSession(ctx, session)
}

func (t *storeTx) InsertChargingDataPoint(ctx context.Context, point *models.ChargingDataPoint) error {
	return t.charging.InsertDataPoint(ctx, point)
}

func (t *storeTx) DataPointsBySession(ctx context.Context, sessionID int64) ([]models.ChargingDataPoint, error) {
	return t.charging.DataPointsBySession(ctx, sessionID)
}
