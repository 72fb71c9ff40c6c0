// Package store defines the durable-store contract the core consumes
// and a small set of record types shared across the watchdog,
// the race loaders, and the event journal's durable mirror. The core never
// depends on a concrete database driver; only this interface.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yatahunt/racecore/event"
)

// RaceStatus is one of the literal status strings the durable store uses
// for a race record.
type RaceStatus string

const (
	RegistrationOpen   RaceStatus = "REGISTRATION_OPEN"
	RegistrationClosed RaceStatus = "REGISTRATION_CLOSED"
	Upcoming           RaceStatus = "UPCOMING"
	Ongoing            RaceStatus = "ONGOING"
	Finished           RaceStatus = "FINISHED"
	Canceled           RaceStatus = "CANCELED"
)

// ResultStatus is the terminal per-car status recorded in a race result row.
type ResultStatus string

const (
	ResultFinished ResultStatus = "FINISHED"
	ResultDnf      ResultStatus = "DNF"
)

// Race is a durable race record.
type Race struct {
	ID            uuid.UUID
	TrackID       string
	Status        RaceStatus
	StartDatetime time.Time
}

// Team is a durable team record. Its cars are listed separately through
// ListCarsByTeam, and each car's driver through DriverForCar.
type Team struct {
	ID            uuid.UUID
	Number        uint32
	Name          string
	Logo          string
	Color         string
	PitEfficiency float32
	PlayerID      *uuid.UUID
}

// CarRecord is a durable car record belonging to a team.
type CarRecord struct {
	ID       uuid.UUID
	TeamID   uuid.UUID
	DriverID uuid.UUID
	Stats    CarStats
}

// CarStats mirrors car.Stats for the durable layer, avoiding an import
// cycle between store and car.
type CarStats struct {
	Handling, Acceleration, TopSpeed, Reliability, FuelConsumption, TireWear float32
}

// Driver is a durable driver record.
type Driver struct {
	ID               uuid.UUID
	Name             string
	SkillLevel       float32
	Stamina          float32
	WeatherTolerance float32
	Experience       float32
	Consistency      float32
	Focus            float32
}

// Registration pairs a team with the race it's entered into.
type Registration struct {
	RaceID uuid.UUID
	TeamID uuid.UUID
}

// RaceResult is one terminal per-car row.
type RaceResult struct {
	RaceID           uuid.UUID
	CarID            uuid.UUID
	DriverID         uuid.UUID
	TeamID           uuid.UUID
	CarNumber        uint32
	FinalPosition    uint32
	RaceTimeSeconds  float32
	Status           ResultStatus
	LapsCompleted    uint32
	TotalDistanceKm  float32
}

// Store is the durable-store contract the core consumes. CreateEvent is
// inherited from event.Sink: event.Record already carries the race id and
// the full Event payload. Memory, in this package, is the in-memory
// implementation; the core only ever depends on this interface.
type Store interface {
	event.Sink

	GetRaceByID(ctx context.Context, raceID uuid.UUID) (*Race, error)
	UpdateRaceStatus(ctx context.Context, raceID uuid.UUID, status RaceStatus) error
	StartRace(ctx context.Context, raceID uuid.UUID) error
	FinishRace(ctx context.Context, raceID uuid.UUID) error
	HasOngoingRace(ctx context.Context) (bool, error)

	GetRacesToCancel(ctx context.Context, now time.Time) ([]Race, error)
	GetRacesToMarkUpcoming(ctx context.Context, now time.Time, window time.Duration) ([]Race, error)
	GetRacesToStart(ctx context.Context, now time.Time) ([]Race, error)
	GetUpcomingRaces(ctx context.Context) ([]Race, error)

	ListRegistrationsByRace(ctx context.Context, raceID uuid.UUID) ([]Registration, error)
	ListCarsByTeam(ctx context.Context, teamID uuid.UUID) ([]CarRecord, error)
	ListAITeamsNotRegisteredForRace(ctx context.Context, raceID uuid.UUID, limit int) ([]Team, error)
	DriverForCar(ctx context.Context, carID uuid.UUID) (*Driver, error)
	GetTeam(ctx context.Context, teamID uuid.UUID) (*Team, error)

	CreateRaceResult(ctx context.Context, result RaceResult) error
	AwardDriverExperience(ctx context.Context, driverID uuid.UUID, delta float32) error
}
