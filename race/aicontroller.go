package race

import (
	"github.com/yatahunt/racecore/car"
	"github.com/yatahunt/racecore/tire"
)

// PitDecision is the AI pit controller's output: whether to pit, and if so
// which tire and fuel target to request.
type PitDecision struct {
	Pit  bool
	Tire *tire.Type
	Fuel *float32
}

// DecidePit is the pure AI pit-strategy function. It never mutates c; Tick
// applies its decision. It returns no-pit when
// the car is not AI-controlled, already has a pit requested, or is
// currently in the pits.
func DecidePit(c car.Car, trackWetness float32, totalLaps uint32) PitDecision {
	if !c.IsAI() || c.Pit.Requested || c.Status == car.Pit {
		return PitDecision{}
	}

	needsPit := false
	if c.Fuel < 99.0 {
		needsPit = true
	}

	var lapsRemaining uint32
	if totalLaps > c.Lap {
		lapsRemaining = totalLaps - c.Lap
	}

	var best tire.Type
	switch {
	case trackWetness > 0.65:
		best = tire.Wet
	case trackWetness > 0.2:
		best = tire.Intermediate
	case lapsRemaining > 12:
		best = tire.Hard
	case lapsRemaining > 6:
		best = tire.Medium
	default:
		best = tire.Soft
	}

	if best.IsWetCompound() != c.Tire.Type.IsWetCompound() {
		needsPit = true
	}

	if !needsPit {
		return PitDecision{}
	}

	fuel := float32(100)
	return PitDecision{Pit: true, Tire: &best, Fuel: &fuel}
}
