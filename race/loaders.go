package race

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yatahunt/racecore/car"
	"github.com/yatahunt/racecore/driver"
	"github.com/yatahunt/racecore/raceerr"
	"github.com/yatahunt/racecore/store"
	"github.com/yatahunt/racecore/team"
	"github.com/yatahunt/racecore/tire"
	"github.com/yatahunt/racecore/track"
)

// newCarSlotRNG is overridden in tests that need deterministic
// base_performance sampling; production code leaves it as math/rand's
// package-level source.
var newCarSlotRNG = rand.Float32

// seedCar applies the loader-wide defaults every car gets regardless of
// source: sequential numbering, base_performance in [0.9, 1.1], Medium
// tires at zero wear, full fuel, Normal style, Racing status.
func seedCar(number uint32, id uuid.UUID, t team.Team, d driver.Driver, stats car.Stats, playerID *uuid.UUID) *car.Car {
	return &car.Car{
		ID:              id,
		Number:          number,
		Team:            t,
		Driver:          d,
		Stats:           stats,
		Tire:            tire.Tire{Type: tire.Medium, Wear: 0},
		Fuel:            100,
		Style:           driver.Normal,
		Status:          car.Racing,
		BasePerformance: 0.9 + 0.2*newCarSlotRNG(),
		PlayerID:        playerID,
	}
}

// LoadDefault builds an in-process Race State with no durable binding.
// Intended for tests and for a quick-start demo entrypoint. Each team
// fields CarsPerTeam cars, so drivers must hold len(teams)*CarsPerTeam
// entries, two consecutive entries per team. playerIDs is indexed the same
// way as drivers; it may be nil or shorter, and a missing entry makes that
// car AI-controlled.
func LoadDefault(log zerolog.Logger, trk track.Track, teams []team.Team, drivers []driver.Driver, playerIDs []*uuid.UUID) (*State, error) {
	if len(drivers) != len(teams)*CarsPerTeam {
		return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("default loader needs %d drivers per team, got %d teams and %d drivers", CarsPerTeam, len(teams), len(drivers)))
	}

	s := newEmpty(log)
	s.Track = trk

	number := uint32(1)
	for i, t := range teams {
		for slot := 0; slot < CarsPerTeam; slot++ {
			driverIdx := i*CarsPerTeam + slot
			var owner *uuid.UUID
			if driverIdx < len(playerIDs) {
				owner = playerIDs[driverIdx]
			}
			s.Cars[number] = seedCar(number, uuid.New(), t, drivers[driverIdx], car.DefaultStats(), owner)
			number++
		}
	}
	return s, nil
}

// configFile is the JSON shape of a race config file.
type configFile struct {
	TrackID string            `json:"track_id"`
	Teams   []configFileEntry `json:"teams"`
}

// configFileEntry mirrors original_source's TeamConfig: one team fields two
// driver+car-stats slots.
type configFileEntry struct {
	Team    configTeam   `json:"team"`
	Driver1 configDriver `json:"driver_1"`
	Driver2 configDriver `json:"driver_2"`
	Car1    configStats  `json:"car_1"`
	Car2    configStats  `json:"car_2"`
}

type configTeam struct {
	Number        uint32  `json:"number"`
	Name          string  `json:"name"`
	Logo          string  `json:"logo"`
	Color         string  `json:"color"`
	PitEfficiency float32 `json:"pit_efficiency"`
}

type configDriver struct {
	Name             string  `json:"name"`
	SkillLevel       float32 `json:"skill_level"`
	Stamina          float32 `json:"stamina"`
	WeatherTolerance float32 `json:"weather_tolerance"`
	Consistency      float32 `json:"consistency"`
	Focus            float32 `json:"focus"`
}

type configStats struct {
	Handling        float32 `json:"handling"`
	Acceleration    float32 `json:"acceleration"`
	TopSpeed        float32 `json:"top_speed"`
	Reliability     float32 `json:"reliability"`
	FuelConsumption float32 `json:"fuel_consumption"`
	TireWear        float32 `json:"tire_wear"`
}

// LoadFromConfigFile builds a Race State from a JSON race config describing
// a track folder and an array of teams, each with two driver+car-stats
// slots. Every car it produces is AI-owned: config-file races have no
// player registrations.
func LoadFromConfigFile(log zerolog.Logger, path string) (*State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("reading race config %s: %w", path, err))
	}

	var cfg configFile
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("parsing race config %s: %w", path, err))
	}

	trk, err := track.Load(cfg.TrackID)
	if err != nil {
		return nil, raceerr.Wrap(raceerr.Load, err)
	}

	s := newEmpty(log)
	s.Track = trk

	number := uint32(1)
	for _, entry := range cfg.Teams {
		t := team.Team{
			ID:            uuid.New(),
			Number:        entry.Team.Number,
			Name:          entry.Team.Name,
			Logo:          entry.Team.Logo,
			Color:         entry.Team.Color,
			PitEfficiency: entry.Team.PitEfficiency,
		}
		for _, slot := range []struct {
			d configDriver
			c configStats
		}{
			{entry.Driver1, entry.Car1},
			{entry.Driver2, entry.Car2},
		} {
			d := driver.Driver{
				ID:               uuid.New(),
				Name:             slot.d.Name,
				SkillLevel:       slot.d.SkillLevel,
				Stamina:          slot.d.Stamina,
				WeatherTolerance: slot.d.WeatherTolerance,
				Consistency:      slot.d.Consistency,
				Focus:            slot.d.Focus,
			}
			stats := car.Stats{
				Handling:        slot.c.Handling,
				Acceleration:    slot.c.Acceleration,
				TopSpeed:        slot.c.TopSpeed,
				Reliability:     slot.c.Reliability,
				FuelConsumption: slot.c.FuelConsumption,
				TireWear:        slot.c.TireWear,
			}
			s.Cars[number] = seedCar(number, uuid.New(), t, d, stats, nil)
			number++
		}
	}
	return s, nil
}

// LoadFromDurable builds a Race State from a durable race identity: the race
// record, its track, its registered teams (each with their cars and
// drivers), and — if fewer than MaxParticipants teams are registered — AI
// teams filling the remaining slots.
func LoadFromDurable(ctx context.Context, log zerolog.Logger, st store.Store, raceID uuid.UUID) (*State, error) {
	race, err := st.GetRaceByID(ctx, raceID)
	if err != nil {
		return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("fetching race %s: %w", raceID, err))
	}
	if race == nil {
		return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("race %s not found", raceID))
	}

	trk, err := track.Load(race.TrackID)
	if err != nil {
		return nil, raceerr.Wrap(raceerr.Load, err)
	}

	registrations, err := st.ListRegistrationsByRace(ctx, raceID)
	if err != nil {
		return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("listing registrations for race %s: %w", raceID, err))
	}

	teamIDs := make([]uuid.UUID, 0, len(registrations)+MaxParticipants)
	for _, r := range registrations {
		teamIDs = append(teamIDs, r.TeamID)
	}

	if len(teamIDs) < MaxParticipants {
		fill, err := st.ListAITeamsNotRegisteredForRace(ctx, raceID, MaxParticipants-len(teamIDs))
		if err != nil {
			return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("listing AI teams for race %s: %w", raceID, err))
		}
		for _, t := range fill {
			teamIDs = append(teamIDs, t.ID)
		}
	}

	s := newEmpty(log)
	s.Track = trk

	number := uint32(1)
	for _, teamID := range teamIDs {
		teamRec, err := st.GetTeam(ctx, teamID)
		if err != nil {
			return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("fetching team %s: %w", teamID, err))
		}
		if teamRec == nil {
			return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("team %s not found", teamID))
		}

		carRecs, err := st.ListCarsByTeam(ctx, teamID)
		if err != nil {
			return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("listing cars for team %s: %w", teamID, err))
		}
		if len(carRecs) == 0 {
			return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("team %s has no cars", teamID))
		}

		t := team.Team{
			ID:            teamRec.ID,
			Number:        teamRec.Number,
			Name:          teamRec.Name,
			Logo:          teamRec.Logo,
			Color:         teamRec.Color,
			PitEfficiency: teamRec.PitEfficiency,
		}

		for _, carRec := range carRecs {
			driverRec, err := st.DriverForCar(ctx, carRec.ID)
			if err != nil {
				return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("resolving driver for car %s: %w", carRec.ID, err))
			}
			if driverRec == nil {
				return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("no driver found for car %s", carRec.ID))
			}

			d := driver.Driver{
				ID:               driverRec.ID,
				Name:             driverRec.Name,
				SkillLevel:       driverRec.SkillLevel,
				Stamina:          driverRec.Stamina,
				WeatherTolerance: driverRec.WeatherTolerance,
				Experience:       driverRec.Experience,
				Consistency:      driverRec.Consistency,
				Focus:            driverRec.Focus,
			}
			stats := car.Stats{
				Handling:        carRec.Stats.Handling,
				Acceleration:    carRec.Stats.Acceleration,
				TopSpeed:        carRec.Stats.TopSpeed,
				Reliability:     carRec.Stats.Reliability,
				FuelConsumption: carRec.Stats.FuelConsumption,
				TireWear:        carRec.Stats.TireWear,
			}

			s.Cars[number] = seedCar(number, carRec.ID, t, d, stats, teamRec.PlayerID)
			number++
		}
	}

	s.BindDurable(raceID, st)
	return s, nil
}
