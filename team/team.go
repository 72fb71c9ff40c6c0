// Package team models a racing team, ported from original_source's
// models/team.rs.
package team

import "github.com/google/uuid"

// Team identifies the outfit a car races for.
type Team struct {
	ID            uuid.UUID
	Number        uint32
	Name          string
	Logo          string
	Color         string
	PitEfficiency float32 // [0.4, 0.8]
}

// PitDurationScale maps PitEfficiency linearly from [0.4, 0.8] to [0.8, 1.2]
// so a more efficient crew shaves time off a pit stop and a less efficient
// one adds to it.
func (t Team) PitDurationScale() float32 {
	eff := t.PitEfficiency
	if eff < 0.4 {
		eff = 0.4
	}
	if eff > 0.8 {
		eff = 0.8
	}
	ratio := (eff - 0.4) / 0.4 // 0..1
	return 1.2 - 0.4*ratio     // 1.2 .. 0.8
}
