// Package driver models a driver's ability scalars and live stress level,
// ported from original_source's models/driver.rs.
package driver

import "github.com/google/uuid"

// Style is the driving style a car is currently being driven in.
type Style int

const (
	Relax Style = iota
	Normal
	Aggressive
)

func (s Style) String() string {
	switch s {
	case Relax:
		return "Relax"
	case Normal:
		return "Normal"
	case Aggressive:
		return "Aggressive"
	default:
		return "Unknown"
	}
}

// StyleFactor is the per-style multiplier on acceleration and max speed.
func (s Style) StyleFactor() float32 {
	switch s {
	case Relax:
		return 0.95
	case Aggressive:
		return 1.05
	default:
		return 1.0
	}
}

// Driver holds a driver's identity and ability scalars, all in [0,1], plus
// a live stress level that resets to 0 at the start of every race.
type Driver struct {
	ID               uuid.UUID
	Name             string
	SkillLevel       float32
	Stamina          float32
	WeatherTolerance float32
	Experience       float32
	Consistency      float32
	Focus            float32
	StressLevel      float32
}

// ApplyStyleStress updates StressLevel for one tick of duration dt seconds
// under driving style style, clamped to [0,1].
func (d *Driver) ApplyStyleStress(style Style, dt float32) {
	switch style {
	case Aggressive:
		d.StressLevel += 0.03 * (1 - d.Focus) * dt
	case Normal:
		d.StressLevel -= 0.005 * d.Focus * dt
	case Relax:
		d.StressLevel -= 0.015 * d.Focus * dt
	}
	if d.StressLevel < 0 {
		d.StressLevel = 0
	}
	if d.StressLevel > 1 {
		d.StressLevel = 1
	}
}
