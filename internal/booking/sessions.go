package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Flows is the in-memory registry of active reservation flows, keyed by
// session id. Flows live for the duration of a single authoring session and
// are never persisted; Janitor sweeps out sessions abandoned mid-pipeline so
// the registry cannot grow without bound.
type Flows struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Flow
	creator ReservationCreator
}

// NewFlows builds an empty registry whose flows submit through creator.
func NewFlows(creator ReservationCreator) *Flows {
	return &Flows{byID: make(map[uuid.UUID]*Flow), creator: creator}
}

// Start registers and returns a fresh flow at the date-selection stage.
func (fs *Flows) Start() *Flow {
	f := NewFlow(fs.creator)
	fs.mu.Lock()
	fs.byID[f.ID()] = f
	fs.mu.Unlock()
	return f
}

// Get returns the flow with the given session id. A lookup counts as
// activity: polling a flow's status keeps it alive.
func (fs *Flows) Get(id uuid.UUID) (*Flow, bool) {
	fs.mu.RLock()
	f, ok := fs.byID[id]
	fs.mu.RUnlock()
	if ok {
		f.Touch()
	}
	return f, ok
}

// Remove drops a flow from the registry.
func (fs *Flows) Remove(id uuid.UUID) {
	fs.mu.Lock()
	delete(fs.byID, id)
	fs.mu.Unlock()
}

// SweepIdle removes every flow whose last activity was before cutoff and
// returns how many were removed. Flows with a create call in flight are
// kept regardless of age.
func (fs *Flows) SweepIdle(cutoff time.Time) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	removed := 0
	for id, f := range fs.byID {
		if f.idleSince(cutoff) {
			delete(fs.byID, id)
			removed++
		}
	}
	return removed
}

// Janitor sweeps flows idle for longer than maxIdle once per interval, until
// ctx is cancelled. Run it in its own goroutine.
func (fs *Flows) Janitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fs.SweepIdle(time.Now().Add(-maxIdle))
		}
	}
}
