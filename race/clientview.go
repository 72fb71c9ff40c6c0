package race

import (
	"sort"

	"github.com/yatahunt/racecore/car"
	"github.com/yatahunt/racecore/weather"
)

// TrackView is the read-only track projection sent to clients.
type TrackView struct {
	ID              string
	Name            string
	Description     string
	Laps            uint32
	LapLengthKm     float32
	Wetness         float32
	WeatherCategory string
	ElapsedSeconds  float32
	SampledTrack    []TrackPointView
	SVGStartOffset  float32
}

// TrackPointView mirrors track.Point for client consumption.
type TrackPointView struct {
	X, Y, Curvature float32
}

// ClientView is the complete read-only snapshot handed to a connected
// spectator or driver client. Cars are sorted by race position.
type ClientView struct {
	RunState  string
	TickCount uint64
	LeaderLap uint32
	TotalLaps uint32
	Track     TrackView
	Cars      []car.ClientData
}

// ToClientView projects State into the wire-facing read model. It never
// mutates the race.
func (s *State) ToClientView() ClientView {
	points := make([]TrackPointView, len(s.Track.SampledTrack))
	for i, p := range s.Track.SampledTrack {
		points[i] = TrackPointView{X: p.X, Y: p.Y, Curvature: p.Curvature}
	}

	cars := make([]car.ClientData, 0, len(s.Cars))
	for _, c := range s.Cars {
		cars = append(cars, c.ToClientData())
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].RacePosition < cars[j].RacePosition })

	var leaderLap uint32
	if len(cars) > 0 {
		leaderLap = uint32(cars[0].TrackPosition)
	}

	return ClientView{
		RunState:  s.RunState.String(),
		TickCount: s.TickCount,
		LeaderLap: leaderLap,
		TotalLaps: s.Track.Laps,
		Track: TrackView{
			ID:              s.Track.ID,
			Name:            s.Track.Name,
			Description:     s.Track.Description,
			Laps:            s.Track.Laps,
			LapLengthKm:     s.Track.LapLengthKm,
			Wetness:         s.Track.Wetness,
			WeatherCategory: weather.CategoryOf(s.Track.Wetness).String(),
			ElapsedSeconds:  s.elapsedSeconds(),
			SampledTrack:    points,
			SVGStartOffset:  s.Track.SVGStartOffset,
		},
		Cars: cars,
	}
}
