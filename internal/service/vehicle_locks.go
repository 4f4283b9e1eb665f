package service

import "sync"

// vehicleLocks serializes telemetry processing per vehicle. The episode
// transitions are read-then-act sequences; without a per-vehicle critical
// section two concurrent submissions could both observe "no open drive" and
// each create one. Entries are reference counted so the map does not grow
// with the fleet's lifetime.
type vehicleLocks struct {
	mu    sync.Mutex
	locks map[int64]*vehicleLock
}

type vehicleLock struct {
	sync.Mutex
	refs int
}

func newVehicleLocks() *vehicleLocks {
	return &vehicleLocks{locks: make(map[int64]*vehicleLock)}
}

// acquire blocks until the vehicle's lock is held and returns the release
// function.
func (l *vehicleLocks) acquire(vehicleID int64) func() {
	l.mu.Lock()
	entry, ok := l.locks[vehicleID]
	if !ok {
		entry = &vehicleLock{}
		l.locks[vehicleID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, vehicleID)
		}
		l.mu.Unlock()
	}
}
