package race

import (
	"sort"

	"github.com/google/uuid"

	"github.com/yatahunt/racecore/car"
)

// CarResult is one car's terminal row, written when a race finishes
// naturally.
type CarResult struct {
	CarID           uuid.UUID
	DriverID        uuid.UUID
	TeamID          uuid.UUID
	CarNumber       uint32
	FinalPosition   uint32
	RaceTimeSeconds float32
	Status          car.Status // Finished or Dnf
	LapsCompleted   uint32
	TotalDistanceKm float32
}

// Results snapshots every car's terminal result, sorted by final position.
// Meaningful once RunState is Finished.
func (s *State) Results() []CarResult {
	out := make([]CarResult, 0, len(s.Cars))
	for _, c := range s.Cars {
		out = append(out, CarResult{
			CarID:           c.ID,
			DriverID:        c.Driver.ID,
			TeamID:          c.Team.ID,
			CarNumber:       c.Number,
			FinalPosition:   c.RacePosition,
			RaceTimeSeconds: float32(c.FinishedTime) * s.TickDurationSeconds,
			Status:          c.Status,
			LapsCompleted:   c.Lap,
			TotalDistanceKm: c.TotalDistanceKm,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FinalPosition < out[j].FinalPosition })
	return out
}

// ExperienceForPosition is the decreasing XP award scale of.12:
// position 1 -> 50, 2 -> 45, ... 10 -> 5, any further position -> 5 (floor).
func ExperienceForPosition(position uint32) float32 {
	xp := 50 - float32(position-1)*5
	if xp < 5 {
		xp = 5
	}
	return xp
}
