package runtime

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yatahunt/racecore/car"
	"github.com/yatahunt/racecore/race"
	"github.com/yatahunt/racecore/store"
)

// AttachStore binds the durable store used to persist terminal results and
// drivers' experience when a race finishes naturally. A Handle with no
// store attached (e.g. an in-process test race) skips persistence.
func (h *Handle) AttachStore(st store.Store) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store = st
}

// checkFinish runs after every tick, still holding the lock, to decide
// whether this tick is the one that finished the race. The last return
// value, ok, is false unless this is the first tick observing a finished,
// durably-bound race.
func (h *Handle) checkFinish() (raceID uuid.UUID, results []race.CarResult, ok bool) {
	if h.state.RunState != race.Finished || h.state.RaceID == nil || h.finishPersisted {
		return uuid.UUID{}, nil, false
	}
	h.finishPersisted = true
	return *h.state.RaceID, h.state.Results(), true
}

// persistFinish writes the terminal race status, every car's result row,
// and each driver's experience award. Persistence is best-effort per car:
// one car's failure never blocks the others, and a failure here never
// propagates into the simulation loop.
func (h *Handle) persistFinish(raceID uuid.UUID, results []race.CarResult) {
	h.mu.Lock()
	st := h.store
	h.mu.Unlock()
	if st == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := st.FinishRace(ctx, raceID); err != nil {
		h.log.Error().Err(err).Str("race_id", raceID.String()).Msg("failed to persist race finish status")
	}

	for _, r := range results {
		status := store.ResultFinished
		if r.Status == car.Dnf {
			status = store.ResultDnf
		}
		if err := st.CreateRaceResult(ctx, store.RaceResult{
			RaceID:          raceID,
			CarID:           r.CarID,
			DriverID:        r.DriverID,
			TeamID:          r.TeamID,
			CarNumber:       r.CarNumber,
			FinalPosition:   r.FinalPosition,
			RaceTimeSeconds: r.RaceTimeSeconds,
			Status:          status,
			LapsCompleted:   r.LapsCompleted,
			TotalDistanceKm: r.TotalDistanceKm,
		}); err != nil {
			h.log.Error().Err(err).
				Str("race_id", raceID.String()).
				Uint32("car_number", r.CarNumber).
				Msg("failed to persist race result")
			continue
		}

		xp := race.ExperienceForPosition(r.FinalPosition)
		if err := st.AwardDriverExperience(ctx, r.DriverID, xp); err != nil {
			h.log.Error().Err(err).
				Str("driver_id", r.DriverID.String()).
				Msg("failed to award driver experience")
		}
	}
}
