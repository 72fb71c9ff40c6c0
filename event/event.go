// Package event implements the append-only event journal and its
// asynchronous durable mirror, ported from original_source's
// models/event.rs and the register_event/create_event logic in
// models/race.rs.
package event

import "github.com/google/uuid"

// Type classifies an Event.
type Type int

const (
	StartRace Type = iota
	EndRace
	PitRequest
	PitCancel
	PitStop
	WeatherChange
	Accident
	CarFinished
	Dnf
	Other
)

func (t Type) String() string {
	switch t {
	case StartRace:
		return "StartRace"
	case EndRace:
		return "EndRace"
	case PitRequest:
		return "PitRequest"
	case PitCancel:
		return "PitCancel"
	case PitStop:
		return "PitStop"
	case WeatherChange:
		return "WeatherChange"
	case Accident:
		return "Accident"
	case CarFinished:
		return "CarFinished"
	case Dnf:
		return "Dnf"
	default:
		return "Other"
	}
}

// Data carries the optional identities and snapshots attached to an Event.
type Data struct {
	CarNumber         *uint32
	CarID             *uuid.UUID
	TeamName          string
	TeamID            *uuid.UUID
	DriverName        string
	DriverID          *uuid.UUID
	Tire              string
	Fuel              *float32
	Weather           string
	TimeOffsetSeconds float32
}

// Event is one journal entry. Once appended, events are never mutated or
// reordered; IDs are assigned monotonically per race.
type Event struct {
	ID          uint64
	Type        Type
	Description string
	Data        Data
}
