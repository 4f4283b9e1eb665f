package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"ditelemetry/internal/models"
	"ditelemetry/internal/telemetry"
)

// resolveDrive runs the gear-based drive state machine for one snapshot.
// It returns the drive the snapshot belongs to (nil outside any drive) and
// whether that drive was opened by this snapshot.
func (s *TelemetryService) resolveDrive(ctx context.Context, tx TelemetryTx, vehicleID int64, ts time.Time, m telemetry.Measurements) (*models.Drive, bool, error) {
	open, err := tx.OpenDrive(ctx, vehicleID)
	if err != nil {
		return nil, false, fmt.Errorf("find open drive: %w", err)
	}

	var gear string
	if m.Gear != nil {
		gear = *m.Gear
	}

	switch {
	case open == nil && telemetry.IsDrivingGear(gear):
		drive := &models.Drive{
			VehicleID:           vehicleID,
			StartTime:           ts,
			StartKm:             m.OdometerKm,
			StartBatteryRangeKm: m.BatteryRangeKm,
		}
		if err := tx.InsertDrive(ctx, drive); err != nil {
			return nil, false, fmt.Errorf("insert drive: %w", err)
		}
		s.logger.Info("drive started",
			zap.Int64("vehicle_id", vehicleID),
			zap.Int64("drive_id", drive.ID))
		return drive, true, nil

	case open != nil && gear == telemetry.GearPark:
		if err := s.closeDrive(ctx, tx, open, ts, m); err != nil {
			return nil, false, err
		}
		s.logger.Info("drive ended",
			zap.Int64("vehicle_id", vehicleID),
			zap.Int64("drive_id", open.ID))
		return nil, false, nil

	default:
		// Unknown or unchanged gear: the snapshot simply attaches to
		// whatever is open.
		return open, false, nil
	}
}

// closeDrive stamps the end of the drive and computes its aggregates from
// every snapshot that was attached to it, ordered by time.
func (s *TelemetryService) closeDrive(ctx context.Context, tx TelemetryTx, drive *models.Drive, ts time.Time, m telemetry.Measurements) error {
	drive.EndTime = &ts
	drive.EndKm = m.OdometerKm
	drive.EndBatteryRangeKm = m.BatteryRangeKm

	snaps, err := tx.SnapshotsByDrive(ctx, drive.ID)
	if err != nil {
		return fmt.Errorf("load drive snapshots: %w", err)
	}

	if len(snaps) > 0 {
		drive.StartPositionID = &snaps[0].ID
		drive.EndPositionID = &snaps[len(snaps)-1].ID

		var speeds, powers, temps []float64
		for _, snap := range snaps {
			if snap.Speed != nil {
				speeds = append(speeds, *snap.Speed)
			}
			if snap.PowerKw != nil {
				powers = append(powers, *snap.PowerKw)
			}
			if snap.OutsideTemp != nil {
				temps = append(temps, *snap.OutsideTemp)
			}
		}
		if len(speeds) > 0 {
			drive.SpeedMax = ptr(maxOf(speeds))
		}
		if len(powers) > 0 {
			drive.PowerMax = ptr(maxOf(powers))
			drive.PowerMin = ptr(minOf(powers))
			avg := int(math.Round(mean(powers)))
			drive.PowerAvg = &avg
		}
		if len(temps) > 0 {
			drive.OutsideTempAvg = ptr(mean(temps))
		}
	}

	if drive.StartKm != nil && drive.EndKm != nil {
		distance := *drive.EndKm - *drive.StartKm
		if distance < 0 {
			s.logger.Warn("odometer ran backwards over drive, clamping distance",
				zap.Int64("drive_id", drive.ID),
				zap.Float64("distance_km", distance))
			distance = 0
		}
		drive.DistanceKm = &distance
	}

	minutes := int(drive.EndTime.Sub(drive.StartTime).Minutes())
	drive.DurationMin = &minutes

	if err := tx.UpdateDrive(ctx, drive); err != nil {
		return fmt.Errorf("close drive: %w", err)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
