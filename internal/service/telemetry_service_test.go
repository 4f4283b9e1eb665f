package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ditelemetry/internal/models"
	"ditelemetry/internal/telemetry"
)

// fakeStore is an in-memory TelemetryStore. RunInTx hands the store itself
// to fn; rollback fidelity is the real store's concern, not the pipeline's.
type fakeStore struct {
	vehicles  map[int64]*models.Vehicle
	snapshots []*models.Snapshot
	drives    []*models.Drive
	sessions  []*models.ChargingSession
	points    []*models.ChargingDataPoint
	nextID    int64
}

func newFakeStore(vehicleIDs ...int64) *fakeStore {
	s := &fakeStore{vehicles: map[int64]*models.Vehicle{}, nextID: 1}
	for _, id := range vehicleIDs {
		s.vehicles[id] = &models.Vehicle{ID: id}
	}
	return s
}

func (s *fakeStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *fakeStore) FindVehicle(_ context.Context, id int64) (*models.Vehicle, error) {
	return s.vehicles[id], nil
}

func (s *fakeStore) LatestSnapshot(_ context.Context, vehicleID int64) (*models.Snapshot, error) {
	var latest *models.Snapshot
	for _, snap := range s.snapshots {
		if snap.VehicleID != vehicleID {
			continue
		}
		if latest == nil || snap.RecordedAt.After(latest.RecordedAt) {
			latest = snap
		}
	}
	return latest, nil
}

func (s *fakeStore) DrivesByVehicle(_ context.Context, vehicleID int64, _ int) ([]models.Drive, error) {
	var out []models.Drive
	for _, d := range s.drives {
		if d.VehicleID == vehicleID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *fakeStore) ChargingSessionsByVehicle(_ context.Context, vehicleID int64, _ int) ([]models.ChargingSession, error) {
	var out []models.ChargingSession
	for _, c := range s.sessions {
		if c.VehicleID == vehicleID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeStore) RunInTx(_ context.Context, fn func(tx TelemetryTx) error) error {
	return fn(s)
}

func (s *fakeStore) InsertSnapshot(_ context.Context, snap *models.Snapshot) error {
	snap.ID = s.id()
	s.snapshots = append(s.snapshots, snap)
	return nil
}

func (s *fakeStore) SnapshotsByDrive(_ context.Context, driveID int64) ([]models.Snapshot, error) {
	var out []models.Snapshot
	for _, snap := range s.snapshots {
		if snap.DriveID != nil && *snap.DriveID == driveID {
			out = append(out, *snap)
		}
	}
	return out, nil
}

func (s *fakeStore) OpenDrive(_ context.Context, vehicleID int64) (*models.Drive, error) {
	for _, d := range s.drives {
		if d.VehicleID == vehicleID && d.Open() {
			return d, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) InsertDrive(_ context.Context, drive *models.Drive) error {
	drive.ID = s.id()
	s.drives = append(s.drives, drive)
	return nil
}

func (s *fakeStore) UpdateDrive(_ context.Context, drive *models.Drive) error {
	for i, d := range s.drives {
		if d.ID == drive.ID {
			s.drives[i] = drive
		}
	}
	return nil
}

func (s *fakeStore) SetDriveStartPosition(_ context.Context, driveID, positionID int64) error {
	for _, d := range s.drives {
		if d.ID == driveID {
			d.StartPositionID = &positionID
		}
	}
	return nil
}

func (s *fakeStore) OpenChargingSession(_ context.Context, vehicleID int64) (*models.ChargingSession, error) {
	for _, c := range s.sessions {
		if c.VehicleID == vehicleID && c.Open() {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) InsertChargingSession(_ context.Context, session *models.ChargingSession) error {
	session.ID = s.id()
	s.sessions = append(s.sessions, session)
	return nil
}

func (s *fakeStore) UpdateChargingSession(_ context.Context, session *models.ChargingSession) error {
	for i, c := range s.sessions {
		if c.ID == session.ID {
			s.sessions[i] = session
		}
	}
	return nil
}

func (s *fakeStore) InsertChargingDataPoint(_ context.Context, point *models.ChargingDataPoint) error {
	point.ID = s.id()
	s.points = append(s.points, point)
	return nil
}

func (s *fakeStore) DataPointsBySession(_ context.Context, sessionID int64) ([]models.ChargingDataPoint, error) {
	var out []models.ChargingDataPoint
	for _, p := range s.points {
		if p.ChargingSessionID == sessionID {
			out = append(out, *p)
		}
	}
	return out, nil
}

var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *TelemetryService {
	svc := NewTelemetryService(store, nil, nil, DefaultFreshnessWindow(), zap.NewNop())
	svc.now = func() time.Time { return baseTime }
	return svc
}

func submission(offset time.Duration, devices map[string]telemetry.DeviceData) telemetry.Payload {
	return telemetry.Payload{
		Timestamp: baseTime.Add(offset).UnixMilli(),
		Devices:   devices,
	}
}

func gearPayload(offset time.Duration, gearCode, odometer float64) telemetry.Payload {
	return submission(offset, map[string]telemetry.DeviceData{
		telemetry.DeviceGearbox:   {"getGearboxAutoModeType": gearCode},
		telemetry.DeviceStatistic: {"getTotalMileageValue": odometer},
		telemetry.DeviceSpeed:     {"getCurrentSpeed": 50.0},
	})
}

func chargingPayload(offset time.Duration, state, battery, temp float64) telemetry.Payload {
	return submission(offset, map[string]telemetry.DeviceData{
		telemetry.DeviceCharging:   {"getChargingState": state},
		telemetry.DeviceStatistic:  {"getSOCBatteryPercentage": battery},
		telemetry.DeviceInstrument: {"getOutCarTemperature": temp},
	})
}

func TestProcessSnapshotVehicleNotFound(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.ProcessSnapshot(context.Background(), 7, gearPayload(0, 4, 100))
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestProcessSnapshotStaleTimestamp(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)

	_, err := svc.ProcessSnapshot(context.Background(), 1, gearPayload(-25*time.Hour, 4, 100))
	assert.ErrorIs(t, err, ErrStaleTimestamp)

	_, err = svc.ProcessSnapshot(context.Background(), 1, gearPayload(2*time.Hour, 4, 100))
	assert.ErrorIs(t, err, ErrStaleTimestamp)

	// nothing persisted for the rejected submissions
	assert.Empty(t, store.snapshots)
}

func TestProcessSnapshotInvalidCoordinates(t *testing.T) {
	svc := newTestService(newFakeStore(1))

	lat, lon := 91.0, 13.0
	payload := telemetry.Payload{
		Timestamp: baseTime.UnixMilli(),
		Location:  &telemetry.Location{Latitude: &lat, Longitude: &lon},
	}
	_, err := svc.ProcessSnapshot(context.Background(), 1, payload)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestDriveLifecycle(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)
	ctx := context.Background()

	// gear Drive opens a drive
	res, err := svc.ProcessSnapshot(ctx, 1, gearPayload(-30*time.Minute, 4, 1000.0))
	require.NoError(t, err)
	require.NotNil(t, res.Drive)
	driveID := res.Drive.ID
	assert.True(t, res.Drive.Open())
	require.NotNil(t, res.Drive.StartKm)
	assert.Equal(t, 1000.0, *res.Drive.StartKm)
	require.NotNil(t, res.Snapshot.DriveID)
	assert.Equal(t, driveID, *res.Snapshot.DriveID)
	require.NotNil(t, res.Drive.StartPositionID)
	assert.Equal(t, res.Snapshot.ID, *res.Drive.StartPositionID)

	// a second driving snapshot attaches to the same drive
	res, err = svc.ProcessSnapshot(ctx, 1, gearPayload(-20*time.Minute, 4, 1000.4))
	require.NoError(t, err)
	require.NotNil(t, res.Drive)
	assert.Equal(t, driveID, res.Drive.ID)
	assert.Len(t, store.drives, 1)

	// Park closes it and fills the aggregates
	res, err = svc.ProcessSnapshot(ctx, 1, gearPayload(-10*time.Minute, 1, 1001.0))
	require.NoError(t, err)
	assert.Nil(t, res.Drive)
	assert.Nil(t, res.Snapshot.DriveID)

	closed := store.drives[0]
	require.NotNil(t, closed.EndTime)
	require.NotNil(t, closed.DistanceKm)
	assert.InDelta(t, 1.0, *closed.DistanceKm, 1e-9)
	require.NotNil(t, closed.DurationMin)
	assert.Equal(t, 20, *closed.DurationMin)
	require.NotNil(t, closed.SpeedMax)
	assert.Equal(t, 50.0, *closed.SpeedMax)
	require.NotNil(t, closed.EndPositionID)
	assert.NotEqual(t, *closed.StartPositionID, *closed.EndPositionID)
}

func TestDriveNotReopenedWhileOpen(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)
	ctx := context.Background()

	for _, code := range []float64{4, 3, 2, 5} {
		_, err := svc.ProcessSnapshot(ctx, 1, gearPayload(-time.Hour, code, 1000))
		require.NoError(t, err)
	}
	assert.Len(t, store.drives, 1)
}

func TestUnknownGearAttachesToOpenDrive(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)
	ctx := context.Background()

	res, err := svc.ProcessSnapshot(ctx, 1, gearPayload(-time.Hour, 4, 1000))
	require.NoError(t, err)
	driveID := res.Drive.ID

	// gearbox goes quiet: no gear at all
	res, err = svc.ProcessSnapshot(ctx, 1, submission(-50*time.Minute, map[string]telemetry.DeviceData{
		telemetry.DeviceSpeed: {"getCurrentSpeed": 80.0},
	}))
	require.NoError(t, err)
	require.NotNil(t, res.Drive)
	assert.Equal(t, driveID, res.Drive.ID)
	assert.True(t, store.drives[0].Open())
}

func TestParkWithoutOpenDriveIsNoop(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)

	res, err := svc.ProcessSnapshot(context.Background(), 1, gearPayload(0, 1, 1000))
	require.NoError(t, err)
	assert.Nil(t, res.Drive)
	assert.Empty(t, store.drives)
	assert.Len(t, store.snapshots, 1)
}

func TestDriveDistanceClampedWhenOdometerRunsBackwards(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.ProcessSnapshot(ctx, 1, gearPayload(-time.Hour, 4, 1000))
	require.NoError(t, err)
	_, err = svc.ProcessSnapshot(ctx, 1, gearPayload(-30*time.Minute, 1, 999))
	require.NoError(t, err)

	closed := store.drives[0]
	require.NotNil(t, closed.DistanceKm)
	assert.Equal(t, 0.0, *closed.DistanceKm)
}

func TestChargingLifecycle(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)
	ctx := context.Background()

	// flag on opens a session and records the first data point
	res, err := svc.ProcessSnapshot(ctx, 1, chargingPayload(-45*time.Minute, 1, 40, 18))
	require.NoError(t, err)
	require.NotNil(t, res.ChargingSession)
	sessionID := res.ChargingSession.ID
	require.NotNil(t, res.ChargingSession.StartBatteryLevel)
	assert.Equal(t, 40, *res.ChargingSession.StartBatteryLevel)
	assert.Len(t, store.points, 1)

	// continuation adds exactly one more point, no new session
	res, err = svc.ProcessSnapshot(ctx, 1, chargingPayload(-30*time.Minute, 1, 55, 20))
	require.NoError(t, err)
	require.NotNil(t, res.ChargingSession)
	assert.Equal(t, sessionID, res.ChargingSession.ID)
	assert.Len(t, store.sessions, 1)
	assert.Len(t, store.points, 2)

	// flag off closes with aggregates; the closing snapshot adds no point
	res, err = svc.ProcessSnapshot(ctx, 1, chargingPayload(-15*time.Minute, 0, 80, 22))
	require.NoError(t, err)
	assert.Nil(t, res.ChargingSession)
	assert.Len(t, store.points, 2)

	closed := store.sessions[0]
	require.NotNil(t, closed.EndTime)
	require.NotNil(t, closed.EndBatteryLevel)
	assert.Equal(t, 80, *closed.EndBatteryLevel)
	require.NotNil(t, closed.DurationMin)
	assert.Equal(t, 30, *closed.DurationMin)
	require.NotNil(t, closed.OutsideTempAvg)
	assert.InDelta(t, 19.0, *closed.OutsideTempAvg, 1e-9)
}

func TestChargingAbsentFlagKeepsSessionOpen(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.ProcessSnapshot(ctx, 1, chargingPayload(-time.Hour, 1, 40, 18))
	require.NoError(t, err)

	// charging device goes quiet: session stays open, no data point added
	res, err := svc.ProcessSnapshot(ctx, 1, submission(-50*time.Minute, map[string]telemetry.DeviceData{
		telemetry.DeviceSpeed: {"getCurrentSpeed": 0.0},
	}))
	require.NoError(t, err)
	require.NotNil(t, res.ChargingSession)
	assert.True(t, store.sessions[0].Open())
	assert.Len(t, store.points, 1)
}

func TestChargingOffWithoutSessionIsNoop(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)

	res, err := svc.ProcessSnapshot(context.Background(), 1, chargingPayload(0, 0, 40, 18))
	require.NoError(t, err)
	assert.Nil(t, res.ChargingSession)
	assert.Empty(t, store.sessions)
	assert.Empty(t, store.points)
}

func TestDriveAndChargingIndependent(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)
	ctx := context.Background()

	// preconditioning while plugged in: gear Drive and charging flag together
	payload := submission(-20*time.Minute, map[string]telemetry.DeviceData{
		telemetry.DeviceGearbox:  {"getGearboxAutoModeType": 4.0},
		telemetry.DeviceCharging: {"getChargingState": 1.0},
	})
	res, err := svc.ProcessSnapshot(ctx, 1, payload)
	require.NoError(t, err)
	assert.NotNil(t, res.Drive)
	assert.NotNil(t, res.ChargingSession)
}

func TestLatestSnapshotFallsBackToStore(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestService(store)
	ctx := context.Background()

	snap, err := svc.LatestSnapshot(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, snap)

	_, err = svc.ProcessSnapshot(ctx, 1, gearPayload(-10*time.Minute, 1, 1000))
	require.NoError(t, err)
	_, err = svc.ProcessSnapshot(ctx, 1, gearPayload(-5*time.Minute, 1, 1000))
	require.NoError(t, err)

	snap, err = svc.LatestSnapshot(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, baseTime.Add(-5*time.Minute), snap.RecordedAt)
}

func TestListingsRequireVehicle(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Drives(ctx, 9, 10)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
	_, err = svc.ChargingSessions(ctx, 9, 10)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
	_, err = svc.LatestSnapshot(ctx, 9)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
