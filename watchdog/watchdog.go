// Package watchdog implements the race lifecycle scheduler.
// Ported from original_source's server/src/watchdog.rs: cancel overdue
// races, promote near-start races to Upcoming (loaded Paused), start the
// earliest due race under the global single-race invariant, and resync a
// restarted process onto whatever Upcoming race the durable store already
// knows about.
package watchdog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yatahunt/racecore/race"
	"github.com/yatahunt/racecore/runtime"
	"github.com/yatahunt/racecore/store"
)

// Cadence is the fixed interval between watchdog passes.
const Cadence = 60 * time.Second

// UpcomingWindow is how far ahead of start_datetime a race is promoted to
// Upcoming.12 step 2.
const UpcomingWindow = 5 * time.Minute

// Watchdog owns the durable store handle and the runtime.Handle it loads
// races into.
type Watchdog struct {
	store   store.Store
	handle  *runtime.Handle
	log     zerolog.Logger
	nowFunc func() time.Time
}

// New returns a Watchdog driving handle against st.
func New(log zerolog.Logger, st store.Store, handle *runtime.Handle) *Watchdog {
	return &Watchdog{store: st, handle: handle, log: log, nowFunc: time.Now}
}

// Run fires one pass immediately and then every Cadence until ctx is
// canceled, the same ticker-driven loop idiom the simulation loop uses,
// applied to the watchdog's own cadence.
func (w *Watchdog) Run(ctx context.Context) error {
	w.passLogged(ctx)

	ticker := time.NewTicker(Cadence)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.passLogged(ctx)
		}
	}
}

func (w *Watchdog) passLogged(ctx context.Context) {
	started, upcoming, canceled, err := w.Pass(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("watchdog pass failed")
		return
	}
	if started > 0 || upcoming > 0 || canceled > 0 {
		w.log.Info().
			Int("started", started).
			Int("upcoming", upcoming).
			Int("canceled", canceled).
			Msg("watchdog pass completed")
	}
}

// Pass runs one watchdog check, returning how many races were started,
// marked upcoming, and canceled. An error from one of the store's race
// queries aborts the pass; a failed update, load or start for a single race
// is logged and the pass goes on. Neither is fatal to the caller: Run logs
// and continues on the next tick.
func (w *Watchdog) Pass(ctx context.Context) (started, upcoming, canceled int, err error) {
	now := w.nowFunc()

	toCancel, err := w.store.GetRacesToCancel(ctx, now)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, r := range toCancel {
		if err := w.store.UpdateRaceStatus(ctx, r.ID, store.Canceled); err != nil {
			w.log.Error().Err(err).Str("race_id", r.ID.String()).Msg("failed to cancel overdue race")
			continue
		}
		canceled++
	}

	toMarkUpcoming, err := w.store.GetRacesToMarkUpcoming(ctx, now, UpcomingWindow)
	if err != nil {
		return started, upcoming, canceled, err
	}
	for _, r := range toMarkUpcoming {
		if err := w.store.UpdateRaceStatus(ctx, r.ID, store.Upcoming); err != nil {
			w.log.Error().Err(err).Str("race_id", r.ID.String()).Msg("failed to mark race upcoming")
			continue
		}
		upcoming++
		if err := w.loadPaused(ctx, r.ID); err != nil {
			w.log.Error().Err(err).Str("race_id", r.ID.String()).Msg("failed to load upcoming race")
		}
	}

	hasOngoing, err := w.store.HasOngoingRace(ctx)
	if err != nil {
		return started, upcoming, canceled, err
	}
	runState := w.handle.RunState()
	inMemoryRunning := runState == race.Running || runState == race.LastLap

	if !hasOngoing && !inMemoryRunning {
		toStart, err := w.store.GetRacesToStart(ctx, now)
		if err != nil {
			return started, upcoming, canceled, err
		}
		if len(toStart) > 0 {
			if err := w.startRace(ctx, toStart[0].ID); err != nil {
				w.log.Error().Err(err).Str("race_id", toStart[0].ID.String()).Msg("failed to start race")
			} else {
				started++
			}
		}
	} else {
		if hasOngoing {
			w.log.Debug().Msg("skipping race start: a race is already ongoing in the durable store")
		}
		if inMemoryRunning {
			w.log.Debug().Msg("skipping race start: a race is already running in memory")
		}
	}

	if !inMemoryRunning {
		upcomingRaces, err := w.store.GetUpcomingRaces(ctx)
		if err != nil {
			return started, upcoming, canceled, err
		}
		if len(upcomingRaces) > 0 {
			candidate := upcomingRaces[0]
			currentlyLoaded := false
			w.handle.WithState(func(s *race.State) {
				currentlyLoaded = s.RaceID != nil && *s.RaceID == candidate.ID
			})
			if !currentlyLoaded {
				if err := w.loadPaused(ctx, candidate.ID); err != nil {
					w.log.Error().Err(err).Str("race_id", candidate.ID.String()).Msg("failed to resync upcoming race")
				}
			}
		}
	}

	return started, upcoming, canceled, nil
}

// loadPaused loads raceID into the runtime handle in Paused state so
// clients can see the pre-grid.12 steps 2 and 4.
func (w *Watchdog) loadPaused(ctx context.Context, raceID uuid.UUID) error {
	loaded, err := race.LoadFromDurable(ctx, w.log, w.store, raceID)
	if err != nil {
		return err
	}
	loaded.RunState = race.Paused
	w.handle.Replace(loaded)
	return nil
}

// startRace loads raceID if it isn't already the handle's current race,
// persists status=Ongoing with a fresh start_datetime, then issues the
// "start" command.12 step 3.
func (w *Watchdog) startRace(ctx context.Context, raceID uuid.UUID) error {
	alreadyLoaded := false
	w.handle.WithState(func(s *race.State) {
		alreadyLoaded = s.RaceID != nil && *s.RaceID == raceID
	})

	if !alreadyLoaded {
		loaded, err := race.LoadFromDurable(ctx, w.log, w.store, raceID)
		if err != nil {
			return err
		}
		w.handle.Replace(loaded)
	}

	if err := w.store.StartRace(ctx, raceID); err != nil {
		return err
	}

	w.handle.Dispatch("start")
	return nil
}
