// Package runtime wraps a race.State behind a mutex and spawns the
// fixed-cadence simulation loop that advances it. The scheduling pass lives
// in package watchdog, which drives a Handle from its own goroutine. The
// mutex-guarded tick loop generalizes a single hardcoded race into a
// swappable race.State.
package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yatahunt/racecore/command"
	"github.com/yatahunt/racecore/race"
	"github.com/yatahunt/racecore/store"
)

// Handle is the process-wide exclusive-access point onto one race.State. It
// exposes only short-lived operations (Dispatch, Snapshot, Replace) and
// never leaks the underlying lock to callers.
type Handle struct {
	mu              sync.Mutex
	state           *race.State
	log             zerolog.Logger
	store           store.Store
	finishPersisted bool
}

// NewHandle wraps an already-loaded race.State.
func NewHandle(log zerolog.Logger, initial *race.State) *Handle {
	return &Handle{state: initial, log: log}
}

// Dispatch parses and applies a command against the current race under the
// handle's lock, returning the dispatcher's diagnostic message.
func (h *Handle) Dispatch(line string) string {
	cmd, err := command.Parse(line)
	if err != nil {
		return err.Error()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return command.Apply(h.state, cmd)
}

// Snapshot returns the client-facing projection of the current race under
// the handle's lock. The lock is held only long enough to
// build the value; no reference into the live race.State escapes.
func (h *Handle) Snapshot() race.ClientView {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.ToClientView()
}

// RunState returns the race's current lifecycle state.
func (h *Handle) RunState() race.RunState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.RunState
}

// Replace swaps in a newly loaded race.State, e.g. when the watchdog loads
// the next scheduled race. The previous state is discarded; callers that
// need its terminal results must have already persisted them.
func (h *Handle) Replace(next *race.State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = next
	h.finishPersisted = false
}

// WithState runs fn with exclusive access to the race.State. It exists for
// callers (the watchdog, result persistence) that need more than
// Dispatch/Snapshot offer, while still never handing out the lock itself.
func (h *Handle) WithState(fn func(*race.State)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.state)
}

// RunSimulationLoop advances the wrapped race.State once per
// race.TickDurationSeconds until ctx is canceled. Intended to be launched
// under an errgroup alongside the watchdog (see cmd/raceserver).
func (h *Handle) RunSimulationLoop(ctx context.Context) error {
	period := time.Duration(race.TickDurationSeconds * float32(time.Second))
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			h.mu.Lock()
			h.state.Tick()
			raceID, results, finished := h.checkFinish()
			h.mu.Unlock()

			if finished {
				go h.persistFinish(raceID, results)
			}
		}
	}
}

// Spawn launches the simulation loop under g and returns at once; the loop
// runs until ctx is canceled.
func (h *Handle) Spawn(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error { return h.RunSimulationLoop(ctx) })
}
