package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ditelemetry/internal/models"
)

// LatestSnapshotStore caches each vehicle's most recent snapshot for cheap
// "where is it now" reads. Entries expire so a silent vehicle eventually
// falls back to the database.
type LatestSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLatestSnapshotStore returns redis-backed cache.
func NewLatestSnapshotStore(client *redis.Client, ttl time.Duration) *LatestSnapshotStore {
	return &LatestSnapshotStore{client: client, ttl: ttl}
}

func (s *LatestSnapshotStore) key(vehicleID int64) string {
	return fmt.Sprintf("telemetry:latest:%d", vehicleID)
}

// SaveLatest caches the snapshot as the vehicle's newest.
func (s *LatestSnapshotStore) SaveLatest(ctx context.Context, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(snap.VehicleID), data, s.ttl).Err()
}

// Latest returns the cached snapshot or nil on a miss.
func (s *LatestSnapshotStore) Latest(ctx context.Context, vehicleID int64) (*models.Snapshot, error) {
	result, err := s.client.Get(ctx, s.key(vehicleID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(result), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Delete drops the cached snapshot.
func (s *LatestSnapshotStore) Delete(ctx context.Context, vehicleID int64) error {
	return s.client.Del(ctx, s.key(vehicleID)).Err()
}
