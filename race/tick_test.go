package race

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatahunt/racecore/car"
	"github.com/yatahunt/racecore/event"
	"github.com/yatahunt/racecore/team"
	"github.com/yatahunt/racecore/tire"
	"github.com/yatahunt/racecore/track"
	"github.com/yatahunt/racecore/weather"
)

func flatTrack(laps uint32) track.Track {
	return track.Track{
		ID:           "flat",
		Laps:         laps,
		LapLengthKm:  1,
		SampledTrack: []track.Point{{X: 0, Y: 0, Curvature: 0}, {X: 1, Y: 0, Curvature: 0}},
		Weather:      weather.New([]weather.Sample{{TimeSeconds: 0, Intensity: 0.5}}),
	}
}

func racingCar(number uint32, playerOwned bool) *car.Car {
	c := &car.Car{
		Number:          number,
		Team:            team.Team{PitEfficiency: 0.6},
		Stats:           car.DefaultStats(),
		Tire:            tire.Tire{Type: tire.Medium},
		Fuel:            100,
		Status:          car.Racing,
		BasePerformance: 1.0,
	}
	if playerOwned {
		id := c.ID
		c.PlayerID = &id
	}
	return c
}

func newTestState(laps uint32, cars ...*car.Car) *State {
	s := newEmpty(zerolog.Nop())
	s.Track = flatTrack(laps)
	s.RunState = Running
	for _, c := range cars {
		s.Cars[c.Number] = c
	}
	return s
}

func TestTickNoopWhenNotRunning(t *testing.T) {
	c := racingCar(1, true)
	s := newTestState(3, c)
	s.RunState = Paused

	s.Tick()
	assert.Equal(t, uint64(0), s.TickCount)
	assert.Equal(t, float32(0), c.Speed)
}

func TestTickRampsSpeedFromZero(t *testing.T) {
	c := racingCar(1, true)
	s := newTestState(3, c)

	s.Tick()
	assert.Equal(t, uint64(1), s.TickCount)
	assert.Greater(t, c.Speed, float32(0))
	assert.Equal(t, uint32(1), c.RacePosition)
}

func TestTickPitCarCountsDownThenReturnsToRacing(t *testing.T) {
	c := racingCar(1, false)
	c.Status = car.Pit
	c.Pit.TicksRemaining = 2
	tgt := tire.Hard
	c.Pit.TargetTire = &tgt
	s := newTestState(3, c)

	s.Tick()
	assert.Equal(t, uint32(1), c.Pit.TicksRemaining)
	assert.Equal(t, car.Pit, c.Status)

	s.Tick()
	assert.Equal(t, uint32(0), c.Pit.TicksRemaining)
	assert.Equal(t, car.Pit, c.Status)

	s.Tick()
	assert.Equal(t, car.Racing, c.Status)
	assert.Equal(t, tire.Hard, c.Tire.Type)
	assert.Nil(t, c.Pit.TargetTire)
}

func TestTickMovesCarThroughLapBoundaryAndPits(t *testing.T) {
	c := racingCar(1, false)
	c.LapPercentage = 0.999
	c.Speed = 360
	c.Pit.Requested = true
	s := newTestState(5, c)

	s.Tick()
	assert.Equal(t, uint32(1), c.Lap)
	assert.Equal(t, car.Pit, c.Status)
	assert.False(t, c.Pit.Requested)
	assert.Greater(t, c.Pit.TicksRemaining, uint32(0))
}

func TestTickFinishesCarOnLastLap(t *testing.T) {
	c := racingCar(1, false)
	c.LapPercentage = 0.999
	c.Speed = 360
	c.Lap = 2
	s := newTestState(3, c)
	s.RunState = LastLap

	s.Tick()
	assert.Equal(t, car.Finished, c.Status)
	assert.Equal(t, uint64(1), c.FinishedTime)
	assert.Equal(t, RunState(Finished), s.RunState)
}

func TestTickFinishEventReportsPositionExcludingCarItself(t *testing.T) {
	already := racingCar(1, false)
	already.Status = car.Finished
	already.Lap = 3

	finishing := racingCar(2, false)
	finishing.LapPercentage = 0.999
	finishing.Speed = 360
	finishing.Lap = 2

	s := newTestState(3, already, finishing)
	s.RunState = LastLap

	s.Tick()
	assert.Equal(t, car.Finished, finishing.Status)

	events := s.Journal.Events()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, event.CarFinished, last.Type)
	assert.Contains(t, last.Description, "position 2",
		"one car had already finished, so the second car to finish takes position 2, not 3")
}

func TestTickSetsDnfWhenFuelRunsOut(t *testing.T) {
	c := racingCar(1, false)
	c.Fuel = 0
	s := newTestState(3, c)

	s.Tick()
	assert.Equal(t, car.Dnf, c.Status)
	assert.Equal(t, uint64(1), c.FinishedTime)
}

func TestCompareCarsOrdering(t *testing.T) {
	finishedFirst := &car.Car{Status: car.Finished, Lap: 3, FinishedTime: 100}
	finishedSecond := &car.Car{Status: car.Finished, Lap: 3, FinishedTime: 200}
	racingAhead := &car.Car{Status: car.Racing, TotalDistanceKm: 5}
	racingBehind := &car.Car{Status: car.Racing, TotalDistanceKm: 2}
	dnf := &car.Car{Status: car.Dnf, TotalDistanceKm: 4}

	assert.True(t, compareCars(finishedFirst, finishedSecond))
	assert.False(t, compareCars(finishedSecond, finishedFirst))
	assert.True(t, compareCars(racingAhead, racingBehind))
	assert.True(t, compareCars(racingBehind, dnf))
	assert.False(t, compareCars(dnf, racingBehind))
}

func TestScaledPitTicksFloorsAtOne(t *testing.T) {
	assert.Equal(t, uint32(1), scaledPitTicks(0.0))
	assert.Equal(t, PitDurationTicks, scaledPitTicks(1.0))
}

func TestUpdateFinishPromotesRunStateWhenAllCarsDone(t *testing.T) {
	c1 := racingCar(1, false)
	c1.Status = car.Finished
	c2 := racingCar(2, false)
	c2.Status = car.Dnf
	s := newTestState(3, c1, c2)

	s.updateFinish()
	assert.Equal(t, RunState(Finished), s.RunState)
}

func TestUpdateFinishSetsLastLapWhenSomeoneDoneButNotAll(t *testing.T) {
	c1 := racingCar(1, false)
	c1.Status = car.Finished
	c2 := racingCar(2, false)
	c2.Status = car.Racing
	s := newTestState(3, c1, c2)

	s.updateFinish()
	assert.Equal(t, RunState(LastLap), s.RunState)
}

func TestResultsSortedByFinalPosition(t *testing.T) {
	c1 := racingCar(1, false)
	c1.RacePosition = 2
	c2 := racingCar(2, false)
	c2.RacePosition = 1
	s := newTestState(3, c1, c2)

	results := s.Results()
	require.Len(t, results, 2)
	assert.Equal(t, uint32(1), results[0].FinalPosition)
	assert.Equal(t, uint32(2), results[1].FinalPosition)
}
