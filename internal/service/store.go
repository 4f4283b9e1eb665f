package service

import (
	"context"

	"ditelemetry/internal/models"
)

// TelemetryStore is the persistence contract the telemetry pipeline runs
// against. Lookups that find nothing return (nil, nil); errors are reserved
// for storage failures. RunInTx executes fn inside one all-or-nothing unit
// of work: if fn returns an error nothing it wrote is retained.
type TelemetryStore interface {
	FindVehicle(ctx context.Context, id int64) (*models.Vehicle, error)
	LatestSnapshot(ctx context.Context, vehicleID int64) (*models.Snapshot, error)
	DrivesByVehicle(ctx context.Context, vehicleID int64, limit int) ([]models.Drive, error)
	ChargingSessionsByVehicle(ctx context.Context, vehicleID int64, limit int) ([]models.ChargingSession, error)

	RunInTx(ctx context.Context, fn func(tx TelemetryTx) error) error
}

// TelemetryTx is the transactional slice of the store used while resolving
// episode transitions and persisting a snapshot.
type TelemetryTx interface {
	InsertSnapshot(ctx context.Context, snap *models.Snapshot) error
	SnapshotsByDrive(ctx context.Context, driveID int64) ([]models.Snapshot, error)

	OpenDrive(ctx context.Context, vehicleID int64) (*models.Drive, error)
	InsertDrive(ctx context.Context, drive *models.Drive) error
	UpdateDrive(ctx context.Context, drive *models.Drive) error
	SetDriveStartPosition(ctx context.Context, driveID, positionID int64) error

	OpenChargingSession(ctx context.Context, vehicleID int64) (*models.ChargingSession, error)
	InsertChargingSession(ctx context.Context, session *models.ChargingSession) error
	UpdateChargingSession(ctx context.Context, session *models.ChargingSession) error
	InsertChargingDataPoint(ctx context.Context, point *models.ChargingDataPoint) error
	DataPointsBySession(ctx context.Context, sessionID int64) ([]models.ChargingDataPoint, error)
}

// VehicleStore is the registry contract behind the vehicle CRUD API.
type VehicleStore interface {
	Insert(ctx context.Context, vehicle *models.Vehicle) error
	FindByID(ctx context.Context, id int64) (*models.Vehicle, error)
	List(ctx context.Context, limit, offset int) ([]models.Vehicle, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id int64) error
}

// LatestCache holds the most recent snapshot per vehicle for cheap reads.
// Implementations are best-effort; callers treat failures as cache misses.
type LatestCache interface {
	SaveLatest(ctx context.Context, snap *models.Snapshot) error
	Latest(ctx context.Context, vehicleID int64) (*models.Snapshot, error)
}

// SnapshotFeed receives every successfully processed snapshot.
type SnapshotFeed interface {
	Publish(snap *models.Snapshot)
}
