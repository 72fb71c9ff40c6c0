// Package command implements the race state's textual command surface: a
// thin parser that turns a free-form string into a typed command, and a
// dispatcher that applies it to a race.State. The core never interprets
// strings itself — Parse runs once at the edge and the dispatcher only
// ever sees the sum type below.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yatahunt/racecore/driver"
	"github.com/yatahunt/racecore/tire"
)

// Command is the sum type of every verb the dispatcher understands.
type Command interface {
	isCommand()
}

type StartCommand struct{}

type PauseCommand struct{}

type StopCommand struct{}

// OrderStyle distinguishes the driving-style targets from the terminal Dnf
// order.
type OrderStyle int

const (
	OrderRelax OrderStyle = iota
	OrderNormal
	OrderAggressive
	OrderDnf
)

type OrderCommand struct {
	CarNumber uint32
	Style     OrderStyle
}

type PitCommand struct {
	CarNumber uint32
	Tire      *tire.Type
	Fuel      *float32
}

type NoPitCommand struct {
	CarNumber uint32
}

func (StartCommand) isCommand() {}
func (PauseCommand) isCommand() {}
func (StopCommand) isCommand()  {}
func (OrderCommand) isCommand() {}
func (PitCommand) isCommand()   {}
func (NoPitCommand) isCommand() {}

// Parse turns a raw command line into a typed Command. A non-nil error
// carries the exact diagnostic the dispatcher would otherwise have had to
// produce for a malformed line; callers should surface err.Error() to the
// command's issuer the same way a successfully-applied command's message
// is surfaced.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "start":
		return StartCommand{}, nil
	case "pause":
		return PauseCommand{}, nil
	case "stop":
		return StopCommand{}, nil
	case "order":
		return parseOrder(args)
	case "pit":
		return parsePit(args)
	case "nopit":
		return parseNoPit(args)
	default:
		return nil, fmt.Errorf("unknown command: %s", line)
	}
}

func parseCarNumber(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid car number: %s", s)
	}
	return uint32(n), nil
}

func parseOrder(args []string) (Command, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("usage: order <car_num> <relax|normal|aggressive|dnf>")
	}
	num, err := parseCarNumber(args[0])
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(args[1]) {
	case "relax":
		return OrderCommand{CarNumber: num, Style: OrderRelax}, nil
	case "normal":
		return OrderCommand{CarNumber: num, Style: OrderNormal}, nil
	case "aggressive":
		return OrderCommand{CarNumber: num, Style: OrderAggressive}, nil
	case "dnf":
		return OrderCommand{CarNumber: num, Style: OrderDnf}, nil
	default:
		return nil, fmt.Errorf("invalid driving style: %s. Use relax, normal, or aggressive", args[1])
	}
}

func (s OrderStyle) toDriverStyle() driver.Style {
	switch s {
	case OrderRelax:
		return driver.Relax
	case OrderAggressive:
		return driver.Aggressive
	default:
		return driver.Normal
	}
}

func parseTire(s string) (tire.Type, bool) {
	switch strings.ToLower(s) {
	case "soft":
		return tire.Soft, true
	case "medium":
		return tire.Medium, true
	case "hard":
		return tire.Hard, true
	case "intermediate", "inter":
		return tire.Intermediate, true
	case "wet":
		return tire.Wet, true
	default:
		return 0, false
	}
}

func parseFuel(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil || f < 0 || f > 100 {
		return 0, fmt.Errorf("invalid target fuel level: %s. Must be 0-100", s)
	}
	return float32(f), nil
}

// parsePit accepts any of the four argument orderings.10 allows:
// "<tire>", "refuel <fuel>", "<tire> refuel <fuel>", "refuel <fuel> <tire>".
func parsePit(args []string) (Command, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("usage: pit <car_num> <tire> | refuel <fuel> | <tire> refuel <fuel>")
	}
	num, err := parseCarNumber(args[0])
	if err != nil {
		return nil, err
	}
	rest := args[1:]

	var tirePtr *tire.Type
	var fuelPtr *float32

	i := 0
	for i < len(rest) {
		tok := strings.ToLower(rest[i])
		if tok == "refuel" {
			if i+1 >= len(rest) {
				return nil, fmt.Errorf("missing fuel amount after refuel")
			}
			f, err := parseFuel(rest[i+1])
			if err != nil {
				return nil, err
			}
			fuelPtr = &f
			i += 2
			continue
		}
		t, ok := parseTire(rest[i])
		if !ok {
			return nil, fmt.Errorf("invalid target tire type: %s", rest[i])
		}
		tirePtr = &t
		i++
	}

	if tirePtr == nil && fuelPtr == nil {
		return nil, fmt.Errorf("pit command requires a tire, a refuel amount, or both")
	}
	return PitCommand{CarNumber: num, Tire: tirePtr, Fuel: fuelPtr}, nil
}

func parseNoPit(args []string) (Command, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: nopit <car_num>")
	}
	num, err := parseCarNumber(args[0])
	if err != nil {
		return nil, err
	}
	return NoPitCommand{CarNumber: num}, nil
}
