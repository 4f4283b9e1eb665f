package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ditelemetry/internal/models"
	"ditelemetry/internal/telemetry"
)

// TelemetryService runs the ingest pipeline: normalize a raw payload,
// resolve drive/charging episode transitions and persist the snapshot, all
// inside one unit of work per submission.
type TelemetryService struct {
	store  TelemetryStore
	cache  LatestCache  // optional
	feed   SnapshotFeed // optional
	locks  *vehicleLocks
	window FreshnessWindow
	now    func() time.Time
	logger *zap.Logger
}

// Result is what one processed submission produced: the persisted snapshot
// and whichever episodes are open for the vehicle afterwards.
type Result struct {
	Snapshot        *models.Snapshot
	Drive           *models.Drive
	ChargingSession *models.ChargingSession
}

// NewTelemetryService builds the service. cache and feed may be nil.
func NewTelemetryService(store TelemetryStore, cache LatestCache, feed SnapshotFeed, window FreshnessWindow, logger *zap.Logger) *TelemetryService {
	return &TelemetryService{
		store:  store,
		cache:  cache,
		feed:   feed,
		locks:  newVehicleLocks(),
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// ProcessSnapshot is the end-to-end ingest entry point. Rejections
// (ErrVehicleNotFound, ErrStaleTimestamp, validation errors) leave no trace
// in the store; storage failures roll the whole submission back.
func (s *TelemetryService) ProcessSnapshot(ctx context.Context, vehicleID int64, payload telemetry.Payload) (*Result, error) {
	release := s.locks.acquire(vehicleID)
	defer release()

	vehicle, err := s.store.FindVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	ts := time.UnixMilli(payload.Timestamp).UTC()
	if err := validateFreshness(ts, s.now().UTC(), s.window); err != nil {
		return nil, err
	}

	m := telemetry.Normalize(payload)
	if err := validateMeasurements(m); err != nil {
		return nil, err
	}

	var result Result
	err = s.store.RunInTx(ctx, func(tx TelemetryTx) error {
		drive, driveStarted, err := s.resolveDrive(ctx, tx, vehicleID, ts, m)
		if err != nil {
			return err
		}

		session, err := s.resolveCharging(ctx, tx, vehicleID, ts, m)
		if err != nil {
			return err
		}

		snap := buildSnapshot(vehicleID, ts, m, drive)
		if err := tx.InsertSnapshot(ctx, snap); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}

		// A drive opened by this submission references its own snapshot as
		// the first position; the id only exists after the insert.
		if drive != nil && driveStarted {
			if err := tx.SetDriveStartPosition(ctx, drive.ID, snap.ID); err != nil {
				return fmt.Errorf("set drive start position: %w", err)
			}
			drive.StartPositionID = &snap.ID
		}

		result = Result{Snapshot: snap, Drive: drive, ChargingSession: session}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, result.Snapshot)
	return &result, nil
}

// LatestSnapshot returns the vehicle's most recent snapshot, preferring the
// cache and falling back to the store.
func (s *TelemetryService) LatestSnapshot(ctx context.Context, vehicleID int64) (*models.Snapshot, error) {
	vehicle, err := s.store.FindVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	if s.cache != nil {
		if snap, err := s.cache.Latest(ctx, vehicleID); err == nil && snap != nil {
			return snap, nil
		}
	}

	snap, err := s.store.LatestSnapshot(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if snap != nil && s.cache != nil {
		if err := s.cache.SaveLatest(ctx, snap); err != nil {
			s.logger.Warn("failed to cache latest snapshot", zap.Int64("vehicle_id", vehicleID), zap.Error(err))
		}
	}
	return snap, nil
}

// Drives lists the vehicle's drives, newest first.
func (s *TelemetryService) Drives(ctx context.Context, vehicleID int64, limit int) ([]models.Drive, error) {
	vehicle, err := s.store.FindVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	return s.store.DrivesByVehicle(ctx, vehicleID, limit)
}

// ChargingSessions lists the vehicle's charging sessions, newest first.
func (s *TelemetryService) ChargingSessions(ctx context.Context, vehicleID int64, limit int) ([]models.ChargingSession, error) {
	vehicle, err := s.store.FindVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	return s.store.ChargingSessionsByVehicle(ctx, vehicleID, limit)
}

// publish pushes the committed snapshot to the cache and the live feed.
// Both are best effort; failures never surface to the caller.
func (s *TelemetryService) publish(ctx context.Context, snap *models.Snapshot) {
	if s.cache != nil {
		if err := s.cache.SaveLatest(ctx, snap); err != nil {
			s.logger.Warn("failed to cache latest snapshot", zap.Int64("vehicle_id", snap.VehicleID), zap.Error(err))
		}
	}
	if s.feed != nil {
		s.feed.Publish(snap)
	}
}

func buildSnapshot(vehicleID int64, ts time.Time, m telemetry.Measurements, drive *models.Drive) *models.Snapshot {
	snap := &models.Snapshot{
		VehicleID:  vehicleID,
		RecordedAt: ts,

		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Heading:     m.Heading,
		GPSAccuracy: m.GPSAccuracy,

		Speed:          m.Speed,
		OdometerKm:     m.OdometerKm,
		BatteryLevel:   m.BatteryLevel,
		BatteryRangeKm: m.BatteryRangeKm,
		OutsideTemp:    m.OutsideTemp,
		InsideTemp:     m.InsideTemp,
		PowerKw:        m.PowerKw,

		IsClimateOn:          m.IsClimateOn,
		DriverTempSetting:    m.DriverTempSetting,
		PassengerTempSetting: m.PassengerTempSetting,
		IsRearDefrosterOn:    m.IsRearDefrosterOn,
		IsFrontDefrosterOn:   m.IsFrontDefrosterOn,

		GearPosition: m.Gear,
		FanLevel:     m.FanLevel,
		WindMode:     m.WindMode,
		CycleMode:    m.CycleMode,

		TirePressureFL: m.TirePressureFL,
		TirePressureFR: m.TirePressureFR,
		TirePressureRL: m.TirePressureRL,
		TirePressureRR: m.TirePressureRR,
		TireTempFL:     m.TireTempFL,
		TireTempFR:     m.TireTempFR,
		TireTempRL:     m.TireTempRL,
		TireTempRR:     m.TireTempRR,

		PM25Inside:  m.PM25Inside,
		PM25Outside: m.PM25Outside,
	}
	if drive != nil {
		snap.DriveID = &drive.ID
	}
	return snap
}
