package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToClientViewSortsCarsByRacePosition(t *testing.T) {
	first := racingCar(1, false)
	first.RacePosition = 2
	first.Lap = 1
	second := racingCar(2, false)
	second.RacePosition = 1
	second.Lap = 2
	s := newTestState(3, first, second)

	view := s.ToClientView()
	require.Len(t, view.Cars, 2)
	assert.Equal(t, uint32(2), view.Cars[0].Number)
	assert.Equal(t, uint32(1), view.Cars[1].Number)
	assert.Equal(t, "Running", view.RunState)
	assert.Equal(t, uint32(3), view.TotalLaps)
	assert.Equal(t, uint32(2), view.LeaderLap, "leader is the car in position 1, not numbering order")
}

func TestToClientViewProjectsTrackSamples(t *testing.T) {
	s := newTestState(3)
	view := s.ToClientView()
	require.Len(t, view.Track.SampledTrack, len(s.Track.SampledTrack))
	assert.Equal(t, s.Track.SampledTrack[0].X, view.Track.SampledTrack[0].X)
}

func TestToClientViewProjectsWeatherCategoryAndElapsedTime(t *testing.T) {
	s := newTestState(3)
	s.Track.Wetness = 0.5
	s.TickCount = 20

	view := s.ToClientView()
	assert.Equal(t, "cloudy", view.Track.WeatherCategory)
	assert.InDelta(t, 2.0, view.Track.ElapsedSeconds, 1e-6)
}
