package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ditelemetry/internal/models"
	"ditelemetry/internal/telemetry"
)

// resolveCharging runs the flag-based charging state machine for one
// snapshot. The previous state is whatever the store holds; nothing is
// cached across calls. Returns the open session after this snapshot, nil
// when the vehicle is not charging.
func (s *TelemetryService) resolveCharging(ctx context.Context, tx TelemetryTx, vehicleID int64, ts time.Time, m telemetry.Measurements) (*models.ChargingSession, error) {
	open, err := tx.OpenChargingSession(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find open charging session: %w", err)
	}

	charging := m.IsCharging != nil && *m.IsCharging
	// An absent flag means the charging device went quiet, not that charging
	// stopped; only an explicit false closes a session.
	reportedOff := m.IsCharging != nil && !*m.IsCharging

	switch {
	case open == nil && charging:
		session := &models.ChargingSession{
			VehicleID:         vehicleID,
			StartTime:         ts,
			StartBatteryLevel: m.BatteryLevel,
		}
		if err := tx.InsertChargingSession(ctx, session); err != nil {
			return nil, fmt.Errorf("insert charging session: %w", err)
		}
		s.logger.Info("charging started",
			zap.Int64("vehicle_id", vehicleID),
			zap.Int64("session_id", session.ID))
		if err := s.appendDataPoint(ctx, tx, session, ts, m); err != nil {
			return nil, err
		}
		return session, nil

	case open != nil && reportedOff:
		if err := s.closeChargingSession(ctx, tx, open, ts, m); err != nil {
			return nil, err
		}
		s.logger.Info("charging ended",
			zap.Int64("vehicle_id", vehicleID),
			zap.Int64("session_id", open.ID))
		return nil, nil

	default:
		if open != nil && charging {
			if err := s.appendDataPoint(ctx, tx, open, ts, m); err != nil {
				return nil, err
			}
		}
		return open, nil
	}
}

func (s *TelemetryService) appendDataPoint(ctx context.Context, tx TelemetryTx, session *models.ChargingSession, ts time.Time, m telemetry.Measurements) error {
	point := &models.ChargingDataPoint{
		ChargingSessionID: session.ID,
		RecordedAt:        ts,
		BatteryLevel:      m.BatteryLevel,
		ChargeEnergyAdded: m.ChargeEnergyAdded,
		ChargerPower:      m.ChargerPowerKw,
		OutsideTemp:       m.OutsideTemp,
	}
	if err := tx.InsertChargingDataPoint(ctx, point); err != nil {
		return fmt.Errorf("insert charging data point: %w", err)
	}
	return nil
}

// closeChargingSession stamps the end of the session and aggregates its data
// points: duration, battery delta endpoints, energy added (spread of the
// cumulative counter) and average outside temperature.
func (s *TelemetryService) closeChargingSession(ctx context.Context, tx TelemetryTx, session *models.ChargingSession, ts time.Time, m telemetry.Measurements) error {
	session.EndTime = &ts
	session.EndBatteryLevel = m.BatteryLevel

	minutes := int(ts.Sub(session.StartTime).Minutes())
	session.DurationMin = &minutes

	points, err := tx.DataPointsBySession(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("load charging data points: %w", err)
	}

	var energies, temps []float64
	for _, p := range points {
		if p.ChargeEnergyAdded != nil {
			energies = append(energies, *p.ChargeEnergyAdded)
		}
		if p.OutsideTemp != nil {
			temps = append(temps, *p.OutsideTemp)
		}
	}
	if len(energies) > 0 {
		added := maxOf(energies) - minOf(energies)
		if added < 0 {
			added = 0
		}
		session.ChargeEnergyAdded = &added
	}
	if len(temps) > 0 {
		session.OutsideTempAvg = ptr(mean(temps))
	}

	if err := tx.UpdateChargingSession(ctx, session); err != nil {
		return fmt.Errorf("close charging session: %w", err)
	}
	return nil
}
