package command

import (
	"fmt"

	"github.com/yatahunt/racecore/car"
	"github.com/yatahunt/racecore/event"
	"github.com/yatahunt/racecore/race"
)

// Apply mutates state according to cmd and returns a human-readable
// diagnostic. A successful pit, nopit or order-dnf command appends a
// matching event; start, pause, stop and a driving-style change append no
// event. A rejected command (unknown car, nonsensical transition) mutates
// nothing and only returns its diagnostic message. Apply returns no error:
// malformed lines are rejected earlier, by Parse.
func Apply(state *race.State, cmd Command) string {
	switch c := cmd.(type) {
	case StartCommand:
		return applyStart(state)
	case PauseCommand:
		return applyPause(state)
	case StopCommand:
		return applyStop(state)
	case OrderCommand:
		return applyOrder(state, c)
	case PitCommand:
		return applyPit(state, c)
	case NoPitCommand:
		return applyNoPit(state, c)
	default:
		return "unknown command"
	}
}

func applyStart(state *race.State) string {
	if state.RunState != race.Paused {
		return "Race is already running or finished."
	}
	state.RunState = race.Running
	return "Race started!"
}

func applyPause(state *race.State) string {
	if state.RunState != race.Running {
		return "Race is not running."
	}
	state.RunState = race.Paused
	return "Race paused."
}

func applyStop(state *race.State) string {
	state.RunState = race.Finished
	return "Race stopped/finished manually."
}

func findCar(state *race.State, number uint32) (*car.Car, bool) {
	c, ok := state.Cars[number]
	return c, ok
}

func applyOrder(state *race.State, c OrderCommand) string {
	target, ok := findCar(state, c.CarNumber)
	if !ok {
		return fmt.Sprintf("Car number %d not found.", c.CarNumber)
	}

	if c.Style == OrderDnf {
		// Terminal: finished_time is deliberately left unset for a
		// command-forced Dnf, unlike the fuel-exhaustion path.
		target.Status = car.Dnf
		state.RecordEvent(event.Dnf, fmt.Sprintf("Car %d set to DNF.", c.CarNumber), target)
		return fmt.Sprintf("Car %d set to DNF.", c.CarNumber)
	}

	target.Style = c.Style.toDriverStyle()
	return fmt.Sprintf("Car %d driving style set to %s.", c.CarNumber, target.Style)
}

func applyPit(state *race.State, c PitCommand) string {
	target, ok := findCar(state, c.CarNumber)
	if !ok {
		return fmt.Sprintf("Car number %d not found.", c.CarNumber)
	}

	target.Pit.Requested = true
	target.Pit.TargetTire = c.Tire
	target.Pit.TargetFuel = c.Fuel

	tireName := "unchanged"
	if c.Tire != nil {
		tireName = c.Tire.String()
	}
	fuelName := "unchanged"
	if c.Fuel != nil {
		fuelName = fmt.Sprintf("%.0f%%", *c.Fuel)
	}
	state.RecordEvent(event.PitRequest,
		fmt.Sprintf("Car %d queued for pit stop: Tire -> %s, Fuel -> %s", c.CarNumber, tireName, fuelName), target)
	return fmt.Sprintf("Car %d queued for pit stop: Tire -> %s, Fuel -> %s", c.CarNumber, tireName, fuelName)
}

func applyNoPit(state *race.State, c NoPitCommand) string {
	target, ok := findCar(state, c.CarNumber)
	if !ok {
		return fmt.Sprintf("Car number %d not found.", c.CarNumber)
	}

	target.Pit.Requested = false
	target.Pit.TargetTire = nil
	target.Pit.TargetFuel = nil
	state.RecordEvent(event.PitCancel, fmt.Sprintf("Car %d pit stop canceled.", c.CarNumber), target)
	return fmt.Sprintf("Car %d pit stop canceled.", c.CarNumber)
}
