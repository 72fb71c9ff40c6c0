// Package race implements the tick-driven simulation core: race state,
// the per-tick physics and lifecycle algorithm, the AI pit controller, car
// ordering, finish detection, and the client-view projection. Ported from
// original_source's models/race.rs and race_state.rs.
package race

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yatahunt/racecore/car"
	"github.com/yatahunt/racecore/event"
	"github.com/yatahunt/racecore/track"
)

// RunState is the race's overall lifecycle state.
type RunState int

const (
	Paused RunState = iota
	Running
	LastLap
	Finished
)

func (r RunState) String() string {
	switch r {
	case Paused:
		return "Paused"
	case Running:
		return "Running"
	case LastLap:
		return "LastLap"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// TickDurationSeconds is the fixed simulation cadence.
const TickDurationSeconds float32 = 0.1

// PitDurationTicks is the nominal pit-stop length at the default (midpoint)
// team pit efficiency; see team.PitDurationScale for the per-team
// adjustment.
const PitDurationTicks uint32 = 50

// MaxParticipants bounds how many teams a durable-loaded race fills before
// backfilling with AI teams. Each team enters two cars, so a full grid is
// MaxParticipants*CarsPerTeam = 10 cars.
const MaxParticipants = 5

// CarsPerTeam is the number of driver+car-stats slots every team fields.
const CarsPerTeam = 2

// State is the authoritative in-memory snapshot of one race: its track, its
// cars keyed by car number, lifecycle state, tick counter, event journal,
// and optional durable binding.
type State struct {
	Track               track.Track
	Cars                map[uint32]*car.Car
	RunState            RunState
	TickCount           uint64
	TickDurationSeconds float32
	Journal             *event.Journal
	RaceID              *uuid.UUID

	log zerolog.Logger
}

// newEmpty builds a State with journal and tick parameters initialized and
// the race paused, ready for a loader to populate Track and Cars.
func newEmpty(log zerolog.Logger) *State {
	return &State{
		Cars:                make(map[uint32]*car.Car),
		RunState:            Paused,
		TickDurationSeconds: TickDurationSeconds,
		Journal:             event.New(log),
		log:                 log,
	}
}

// BindDurable attaches a durable race identity and event sink so future
// journal appends are mirrored. See event.Journal.BindDurable.
func (s *State) BindDurable(raceID uuid.UUID, sink event.Sink) {
	s.RaceID = &raceID
	s.Journal.BindDurable(raceID, sink)
}

// elapsedSeconds is the race's simulated clock.
func (s *State) elapsedSeconds() float32 {
	return float32(s.TickCount) * s.TickDurationSeconds
}

// eventData builds the identity/snapshot payload for an event about car c,
// preferring the car's pit target tire as the tire snapshot when present.
func eventData(c *car.Car) event.Data {
	d := event.Data{}
	if c == nil {
		return d
	}
	num := c.Number
	d.CarNumber = &num
	d.CarID = &c.ID
	d.TeamName = c.Team.Name
	d.TeamID = &c.Team.ID
	d.DriverName = c.Driver.Name
	d.DriverID = &c.Driver.ID
	if c.Pit.TargetTire != nil {
		s := c.Pit.TargetTire.String()
		d.Tire = s
	} else {
		d.Tire = c.Tire.Type.String()
	}
	if c.Pit.TargetFuel != nil {
		f := *c.Pit.TargetFuel
		d.Fuel = &f
	}
	return d
}

func (s *State) appendCarEvent(typ event.Type, description string, c *car.Car) event.Event {
	return s.Journal.Append(typ, description, s.TickCount, s.TickDurationSeconds, eventData(c))
}

// RecordEvent appends an event about car c to the journal. Exported for the
// command dispatcher, which mutates car state directly and must record the
// same kind of snapshot the tick loop does.
func (s *State) RecordEvent(typ event.Type, description string, c *car.Car) event.Event {
	return s.appendCarEvent(typ, description, c)
}
