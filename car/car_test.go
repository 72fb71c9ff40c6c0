package car

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yatahunt/racecore/driver"
	"github.com/yatahunt/racecore/tire"
)

func baseCar() Car {
	return Car{
		Number:          7,
		Driver:          driver.Driver{SkillLevel: 0.5},
		Stats:           DefaultStats(),
		Tire:            tire.Tire{Type: tire.Medium},
		Fuel:            100,
		Style:           driver.Normal,
		Status:          Racing,
		BasePerformance: 1.0,
	}
}

func TestMaxSpeedZeroForFinishedAndDnf(t *testing.T) {
	c := baseCar()
	c.Status = Finished
	assert.Equal(t, float32(0), c.MaxSpeed())

	c.Status = Dnf
	assert.Equal(t, float32(0), c.MaxSpeed())
}

func TestMaxSpeedPitCapped(t *testing.T) {
	c := baseCar()
	c.Status = Pit
	assert.Equal(t, float32(30), c.MaxSpeed())
}

func TestMaxSpeedDecreasesWithTireWearAndFuel(t *testing.T) {
	fresh := baseCar()
	fresh.Tire.Wear = 0
	fresh.Fuel = 100

	worn := baseCar()
	worn.Tire.Wear = 80
	worn.Fuel = 100

	assert.Greater(t, fresh.MaxSpeed(), worn.MaxSpeed())

	lowFuel := baseCar()
	lowFuel.Fuel = 0
	assert.Greater(t, lowFuel.MaxSpeed(), fresh.MaxSpeed())
}

func TestMaxSpeedStyleOrdering(t *testing.T) {
	relax := baseCar()
	relax.Style = driver.Relax
	normal := baseCar()
	normal.Style = driver.Normal
	aggressive := baseCar()
	aggressive.Style = driver.Aggressive

	assert.Less(t, relax.MaxSpeed(), normal.MaxSpeed())
	assert.Less(t, normal.MaxSpeed(), aggressive.MaxSpeed())
}

func TestAccelerationScalesWithSkillAndStyle(t *testing.T) {
	low := baseCar()
	low.Driver.SkillLevel = 0
	high := baseCar()
	high.Driver.SkillLevel = 1
	assert.Less(t, low.Acceleration(), high.Acceleration())

	relax := baseCar()
	relax.Style = driver.Relax
	aggressive := baseCar()
	aggressive.Style = driver.Aggressive
	assert.Less(t, relax.Acceleration(), aggressive.Acceleration())
}

func TestClampFuel(t *testing.T) {
	c := baseCar()
	c.Fuel = 150
	c.ClampFuel()
	assert.Equal(t, float32(100), c.Fuel)

	c.Fuel = -10
	c.ClampFuel()
	assert.Equal(t, float32(0), c.Fuel)
}

func TestToClientDataProjectsTrackPositionAndOwnership(t *testing.T) {
	c := baseCar()
	c.Lap = 3
	c.LapPercentage = 0.25
	c.Pit.Requested = true

	data := c.ToClientData()
	assert.Equal(t, float32(3.25), data.TrackPosition)
	assert.False(t, data.PlayerOwned)
	assert.True(t, data.PitRequested)

	owner := c
	playerID := c.ID
	owner.PlayerID = &playerID
	assert.True(t, owner.ToClientData().PlayerOwned)
}

func TestIsAI(t *testing.T) {
	c := baseCar()
	assert.True(t, c.IsAI())

	id := c.ID
	c.PlayerID = &id
	assert.False(t, c.IsAI())
}
