package race

import (
	"fmt"
	"math"
	"sort"

	"github.com/yatahunt/racecore/car"
	"github.com/yatahunt/racecore/event"
)

// Tick advances the race by one simulation step of TickDurationSeconds. It
// is a no-op unless RunState is Running or LastLap. All mutation happens
// synchronously; callers are responsible for holding whatever mutex guards
// concurrent access (see package runtime).
func (s *State) Tick() {
	if s.RunState != Running && s.RunState != LastLap {
		return
	}

	s.TickCount++
	s.updateWetness()

	for _, c := range s.Cars {
		s.tickCar(c)
	}

	s.updatePositions()
	s.updateFinish()
}

// updateWetness advances track wetness toward or away from the current
// weather intensity.5 step 3.
func (s *State) updateWetness() {
	r := s.Track.Weather.StateAt(s.elapsedSeconds())
	dt := s.TickDurationSeconds

	var ratePerSecond float32
	switch {
	case r > 0.66:
		// Getting wetter: the rate ramps from 1/600 per second at 0.66 up to
		// 1/180 per second at full rain intensity 1.
		t := (r - 0.66) / (1 - 0.66)
		rateAt66 := float32(1.0 / 600.0)
		rateAt100 := float32(1.0 / 180.0)
		ratePerSecond = rateAt66 + (rateAt100-rateAt66)*t
	case r < 0.5:
		t := r / 0.5
		rateAt0 := float32(-1.0 / 60.0)
		rateAt50 := float32(-1.0 / 600.0)
		ratePerSecond = rateAt0 + (rateAt50-rateAt0)*t
	default:
		ratePerSecond = 0
	}

	s.Track.Wetness += ratePerSecond * dt
	s.Track.ClampWetness()
}

// tickCar advances one car by one tick.
func (s *State) tickCar(c *car.Car) {
	switch c.Status {
	case car.Finished:
		c.TotalDistanceKm = float32(c.Lap) * s.Track.LapLengthKm
		return
	case car.Dnf:
		return
	case car.Pit:
		s.tickPitCar(c)
		return
	default:
		s.tickRacingCar(c)
	}
}

func (s *State) tickPitCar(c *car.Car) {
	c.Speed = 30
	if c.Pit.TicksRemaining > 0 {
		c.Pit.TicksRemaining--
		return
	}

	if c.Pit.TargetTire != nil {
		c.Tire.Type = *c.Pit.TargetTire
		c.Tire.Wear = 0
		c.Pit.TargetTire = nil
	}
	if c.Pit.TargetFuel != nil {
		target := *c.Pit.TargetFuel
		if target > 100 {
			target = 100
		}
		if target < c.Fuel {
			target = c.Fuel
		}
		c.Fuel = target
		c.Pit.TargetFuel = nil
	}
	c.Status = car.Racing
}

func (s *State) tickRacingCar(c *car.Car) {
	decision := DecidePit(*c, s.Track.Wetness, s.Track.Laps)
	if decision.Pit {
		c.Pit.Requested = true
		c.Pit.TargetTire = decision.Tire
		c.Pit.TargetFuel = decision.Fuel
		tireName := "no change"
		if decision.Tire != nil {
			tireName = decision.Tire.String()
		}
		fuelStr := "no refuel"
		if decision.Fuel != nil {
			fuelStr = fmt.Sprintf("%.0f", *decision.Fuel)
		}
		s.appendCarEvent(event.PitRequest,
			fmt.Sprintf("Car %d (AI) requests pit stop: %s tires, %s fuel", c.Number, tireName, fuelStr), c)
	}

	capability := c.MaxSpeed()
	point := s.Track.PointAtDistance(c.LapPercentage)
	curvatureFactor := float32(math.Exp(-4.62 * float64(point.Curvature)))
	if curvatureFactor < 0.15 {
		curvatureFactor = 0.15
	}
	effectiveMax := capability * curvatureFactor

	ramped := c.Speed + c.Acceleration()
	if ramped < effectiveMax {
		c.Speed = ramped
	} else {
		c.Speed = effectiveMax
	}

	distanceKm := (c.Speed / 3600) * s.TickDurationSeconds
	if s.Track.LapLengthKm > 0 {
		c.LapPercentage += distanceKm / s.Track.LapLengthKm
	}

	settled := s.resolveLapBoundaries(c)
	if settled {
		return
	}

	s.consumeResources(c, capability)
}

// resolveLapBoundaries handles lap-completion, finishing, and pit entry at
// lap boundaries. It returns true if the car's physics processing for this
// tick ends here (finished, or entered the pits mid-tick — "break out of
// physics for this tick").
func (s *State) resolveLapBoundaries(c *car.Car) bool {
	for c.LapPercentage >= 1 {
		c.Lap++
		c.LapPercentage -= 1

		if s.RunState == LastLap {
			position := s.countFinished() + 1
			c.LapPercentage = 0
			c.Status = car.Finished
			c.FinishedTime = s.TickCount
			s.appendCarEvent(event.CarFinished,
				fmt.Sprintf("Car %d finishes in position %d", c.Number, position), c)
			c.TotalDistanceKm = float32(c.Lap) * s.Track.LapLengthKm
			return true
		}

		if c.Pit.Requested && c.Lap < s.Track.Laps {
			c.Status = car.Pit
			c.LapPercentage = 0.0001
			c.Pit.Requested = false
			c.Pit.TicksRemaining = scaledPitTicks(c.Team.PitDurationScale())
			s.appendCarEvent(event.PitStop,
				fmt.Sprintf("Car %d enters the pits", c.Number), c)
			c.TotalDistanceKm = (float32(c.Lap) + c.LapPercentage) * s.Track.LapLengthKm
			return true
		}
	}
	return false
}

// scaledPitTicks applies the team's pit-efficiency scale to the nominal pit
// duration.
func scaledPitTicks(scale float32) uint32 {
	ticks := int(math.Round(float64(PitDurationTicks) * float64(scale)))
	if ticks < 1 {
		ticks = 1
	}
	return uint32(ticks)
}

// consumeResources updates fuel, tire wear and driver stress for a car that
// raced through the full tick without finishing or entering the pits.
// capability is the car's raw, non-curvature-adjusted max speed, used as
// the ratio denominator.
func (s *State) consumeResources(c *car.Car, capability float32) {
	dt := s.TickDurationSeconds

	if capability > 0 {
		speedRatio := c.Speed / capability

		fuelRate := (0.0005 + 0.15*c.Stats.FuelConsumption) * speedRatio
		c.Fuel -= fuelRate * dt
		if c.Fuel < 0 {
			c.Fuel = 0
		}
		if c.Fuel == 0 && c.Status == car.Racing {
			c.Status = car.Dnf
			c.FinishedTime = s.TickCount
			s.appendCarEvent(event.Dnf, fmt.Sprintf("Car %d retires out of fuel", c.Number), c)
		}

		tireBase := 0.0002 + 0.08*c.Stats.TireWear
		c.Tire.Wear += tireBase * c.Tire.Type.WearMultiplier() * speedRatio * dt
		c.Tire.ClampWear()
	}

	c.Driver.ApplyStyleStress(c.Style, dt)

	if c.Status == car.Racing || c.Status == car.Pit {
		c.TotalDistanceKm = (float32(c.Lap) + c.LapPercentage) * s.Track.LapLengthKm
	}
}

// countFinished returns how many cars currently have status Finished.
func (s *State) countFinished() int {
	n := 0
	for _, c := range s.Cars {
		if c.Status == car.Finished {
			n++
		}
	}
	return n
}

// updatePositions computes and assigns race_position for every car per the
// ordering algorithm.
func (s *State) updatePositions() {
	cars := make([]*car.Car, 0, len(s.Cars))
	for _, c := range s.Cars {
		cars = append(cars, c)
	}
	sort.SliceStable(cars, func(i, j int) bool { return compareCars(cars[i], cars[j]) })
	for idx, c := range cars {
		c.RacePosition = uint32(idx + 1)
	}
}

// compareCars reports whether a should be ordered before b.
func compareCars(a, b *car.Car) bool {
	switch {
	case a.Status == car.Finished && b.Status == car.Finished:
		if a.Lap != b.Lap {
			return a.Lap > b.Lap
		}
		return a.FinishedTime < b.FinishedTime
	case a.Status == car.Dnf && b.Status == car.Dnf:
		return a.TotalDistanceKm > b.TotalDistanceKm
	case b.Status == car.Dnf:
		return true
	case a.Status == car.Dnf:
		return false
	default:
		return a.TotalDistanceKm > b.TotalDistanceKm
	}
}

// updateFinish promotes cars that have completed every lap and updates
// RunState accordingly.
func (s *State) updateFinish() {
	totalDone := 0
	someoneFinished := false
	allOthersDone := true

	for _, c := range s.Cars {
		switch {
		case c.Status == car.Finished:
			someoneFinished = true
			totalDone++
		case c.Lap >= s.Track.Laps:
			c.Status = car.Finished
			c.TotalDistanceKm = float32(c.Lap) * s.Track.LapLengthKm
			c.FinishedTime = s.TickCount
			position := totalDone + 1
			s.appendCarEvent(event.CarFinished,
				fmt.Sprintf("Car %d finishes in position %d", c.Number, position), c)
			someoneFinished = true
			totalDone++
		case c.Status == car.Racing || c.Status == car.Pit:
			allOthersDone = false
		case c.Status == car.Dnf:
			totalDone++
		}
	}

	switch {
	case totalDone == len(s.Cars):
		s.RunState = Finished
	case someoneFinished:
		if allOthersDone {
			s.RunState = Finished
		} else {
			s.RunState = LastLap
		}
	}
}
