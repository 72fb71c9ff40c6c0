// Package car models the racing unit: its stats, tire, fuel, and the speed
// model that governs how fast it can go at any instant. Ported from
// original_source's models/car.rs.
package car

import (
	"github.com/google/uuid"

	"github.com/yatahunt/racecore/driver"
	"github.com/yatahunt/racecore/team"
	"github.com/yatahunt/racecore/tire"
)

// Status is a car's race status.
type Status int

const (
	Racing Status = iota
	Pit
	Finished
	Dnf
)

func (s Status) String() string {
	switch s {
	case Racing:
		return "Racing"
	case Pit:
		return "Pit"
	case Finished:
		return "Finished"
	case Dnf:
		return "Dnf"
	default:
		return "Unknown"
	}
}

// Stats are a car's six ability scalars, all in [0,1]. The per-race
// base_performance multiplier sampled at load time is Car.BasePerformance.
type Stats struct {
	Handling        float32
	Acceleration    float32
	TopSpeed        float32
	Reliability     float32
	FuelConsumption float32
	TireWear        float32
}

// DefaultStats returns the neutral 0.5-everywhere stats used by the
// in-process default configuration loader.
func DefaultStats() Stats {
	return Stats{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
}

// PitPlan holds the target state a requested pit stop will apply on exit.
type PitPlan struct {
	Requested        bool
	TargetTire       *tire.Type
	TargetFuel       *float32
	TicksRemaining   uint32
}

// Car is one racing unit on track.
type Car struct {
	ID     uuid.UUID
	Number uint32
	Team   team.Team
	Driver driver.Driver
	Stats  Stats

	Tire   tire.Tire
	Fuel   float32 // [0,100]
	Style  driver.Style
	Status Status

	RacePosition     uint32
	Lap              uint32
	LapPercentage    float32 // [0,1)
	TotalDistanceKm  float32
	FinishedTime     uint64 // ticks, 0 if unfinished
	Speed            float32
	BasePerformance  float32 // [0.9, 1.1]

	Pit PitPlan

	// PlayerID is the owning player's identity; nil means AI-controlled.
	PlayerID *uuid.UUID
}

// IsAI reports whether the car has no owning player.
func (c Car) IsAI() bool { return c.PlayerID == nil }

// ClampFuel clamps Fuel into [0,100].
func (c *Car) ClampFuel() {
	if c.Fuel < 0 {
		c.Fuel = 0
	}
	if c.Fuel > 100 {
		c.Fuel = 100
	}
}

// MaxSpeed computes the car's instantaneous speed ceiling.
func (c Car) MaxSpeed() float32 {
	switch c.Status {
	case Pit:
		return 30
	case Finished, Dnf:
		return 0
	}

	baseTop := 200 + 200*c.Stats.TopSpeed
	tireTypeFactor := c.Tire.Type.SpeedFactor()
	tireWearFactor := 1 - c.Tire.Wear/1000
	fuelFactor := 1 - c.Fuel/1000
	styleFactor := c.Style.StyleFactor()
	driverSkillFactor := 1 + 0.05*c.Driver.SkillLevel
	handlingFactor := 0.98 + 0.04*c.Stats.Handling

	return baseTop * c.BasePerformance * tireTypeFactor * tireWearFactor *
		fuelFactor * styleFactor * driverSkillFactor * handlingFactor
}

// Acceleration computes the km/h-per-tick ramp rate.
func (c Car) Acceleration() float32 {
	base := 5 + 10*c.Stats.Acceleration
	driverSkillFactor := 1 + 0.1*c.Driver.SkillLevel
	return base * driverSkillFactor * c.Style.StyleFactor()
}

// ClientData is the read-only per-car projection exposed in the client
// view.
type ClientData struct {
	Number         uint32
	Driver         driver.Driver
	Team           team.Team
	Stats          Stats
	RacePosition   uint32
	TrackPosition  float32 // lap + lap_percentage
	Status         Status
	Tire           tire.Tire
	Fuel           float32
	Style          driver.Style
	Speed          float32
	FinishedTime   uint64
	PlayerOwned    bool
	PitRequested   bool
}

// ToClientData projects a Car into its client-facing view.
func (c Car) ToClientData() ClientData {
	return ClientData{
		Number:        c.Number,
		Driver:        c.Driver,
		Team:          c.Team,
		Stats:         c.Stats,
		RacePosition:  c.RacePosition,
		TrackPosition: float32(c.Lap) + c.LapPercentage,
		Status:        c.Status,
		Tire:          c.Tire,
		Fuel:          c.Fuel,
		Style:         c.Style,
		Speed:         c.Speed,
		FinishedTime:  c.FinishedTime,
		PlayerOwned:   c.PlayerID != nil,
		PitRequested:  c.Pit.Requested,
	}
}
