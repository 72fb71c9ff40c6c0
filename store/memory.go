package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yatahunt/racecore/event"
)

var _ Store = (*Memory)(nil)

// Memory is an in-process Store used by tests and by the single-binary
// demo entrypoint. All methods are safe for concurrent use.
type Memory struct {
	mu sync.Mutex

	races         map[uuid.UUID]*Race
	teams         map[uuid.UUID]*Team
	carsByTeam    map[uuid.UUID][]CarRecord
	drivers       map[uuid.UUID]*Driver
	registrations map[uuid.UUID][]uuid.UUID // raceID -> teamIDs
	results       map[[2]uuid.UUID]RaceResult
	experience    map[uuid.UUID]float32
	events        []event.Record
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		races:         make(map[uuid.UUID]*Race),
		teams:         make(map[uuid.UUID]*Team),
		carsByTeam:    make(map[uuid.UUID][]CarRecord),
		drivers:       make(map[uuid.UUID]*Driver),
		registrations: make(map[uuid.UUID][]uuid.UUID),
		results:       make(map[[2]uuid.UUID]RaceResult),
		experience:    make(map[uuid.UUID]float32),
	}
}

func (m *Memory) PutRace(r Race)                          { m.mu.Lock(); defer m.mu.Unlock(); cp := r; m.races[r.ID] = &cp }
func (m *Memory) PutTeam(t Team)                          { m.mu.Lock(); defer m.mu.Unlock(); cp := t; m.teams[t.ID] = &cp }
func (m *Memory) PutDriver(d Driver)                      { m.mu.Lock(); defer m.mu.Unlock(); cp := d; m.drivers[d.ID] = &cp }
func (m *Memory) PutCars(teamID uuid.UUID, cars []CarRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carsByTeam[teamID] = append([]CarRecord(nil), cars...)
}
func (m *Memory) Register(raceID, teamID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[raceID] = append(m.registrations[raceID], teamID)
}

func (m *Memory) GetRaceByID(_ context.Context, raceID uuid.UUID) (*Race, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.races[raceID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *Memory) UpdateRaceStatus(_ context.Context, raceID uuid.UUID, status RaceStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.races[raceID]; ok {
		r.Status = status
	}
	return nil
}

func (m *Memory) StartRace(_ context.Context, raceID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.races[raceID]; ok {
		r.Status = Ongoing
		r.StartDatetime = now()
	}
	return nil
}

func (m *Memory) FinishRace(_ context.Context, raceID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.races[raceID]; ok {
		r.Status = Finished
	}
	return nil
}

func (m *Memory) HasOngoingRace(_ context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.races {
		if r.Status == Ongoing {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) GetRacesToCancel(_ context.Context, nowAt time.Time) ([]Race, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Race
	for _, r := range m.races {
		if r.StartDatetime.Before(nowAt) && (r.Status == RegistrationOpen || r.Status == RegistrationClosed) {
			out = append(out, *r)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) GetRacesToMarkUpcoming(_ context.Context, nowAt time.Time, window time.Duration) ([]Race, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Race
	for _, r := range m.races {
		if r.StartDatetime.After(nowAt) && !r.StartDatetime.After(nowAt.Add(window)) &&
			(r.Status == RegistrationOpen || r.Status == RegistrationClosed) {
			out = append(out, *r)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) GetRacesToStart(_ context.Context, nowAt time.Time) ([]Race, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Race
	for _, r := range m.races {
		if !r.StartDatetime.After(nowAt) &&
			(r.Status == Upcoming || r.Status == RegistrationClosed || r.Status == RegistrationOpen) {
			out = append(out, *r)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) GetUpcomingRaces(_ context.Context) ([]Race, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Race
	for _, r := range m.races {
		if r.Status == Upcoming {
			out = append(out, *r)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) ListRegistrationsByRace(_ context.Context, raceID uuid.UUID) ([]Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	teams := m.registrations[raceID]
	out := make([]Registration, len(teams))
	for i, t := range teams {
		out[i] = Registration{RaceID: raceID, TeamID: t}
	}
	return out, nil
}

func (m *Memory) ListCarsByTeam(_ context.Context, teamID uuid.UUID) ([]CarRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CarRecord(nil), m.carsByTeam[teamID]...), nil
}

func (m *Memory) ListAITeamsNotRegisteredForRace(_ context.Context, raceID uuid.UUID, limit int) ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	registered := make(map[uuid.UUID]bool)
	for _, t := range m.registrations[raceID] {
		registered[t] = true
	}
	var out []Team
	for _, t := range m.teams {
		if t.PlayerID != nil || registered[t.ID] {
			continue
		}
		out = append(out, *t)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) DriverForCar(_ context.Context, carID uuid.UUID) (*Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cars := range m.carsByTeam {
		for _, c := range cars {
			if c.ID == carID {
				if d, ok := m.drivers[c.DriverID]; ok {
					cp := *d
					return &cp, nil
				}
				return nil, nil
			}
		}
	}
	return nil, nil
}

func (m *Memory) GetTeam(_ context.Context, teamID uuid.UUID) (*Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teams[teamID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *Memory) CreateRaceResult(_ context.Context, result RaceResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uuid.UUID{result.RaceID, result.CarID}
	m.results[key] = result
	return nil
}

func (m *Memory) AwardDriverExperience(_ context.Context, driverID uuid.UUID, delta float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.experience[driverID] += delta
	if d, ok := m.drivers[driverID]; ok {
		d.Experience += delta
	}
	return nil
}

func (m *Memory) CreateEvent(_ context.Context, rec event.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, rec)
	return nil
}

// Events returns every event mirrored so far, in arrival order.
func (m *Memory) Events() []event.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]event.Record(nil), m.events...)
}

func sortByStart(races []Race) {
	sort.Slice(races, func(i, j int) bool { return races[i].StartDatetime.Before(races[j].StartDatetime) })
}

// now is a seam so tests can fake the clock via a package-level override if
// ever needed; StartRace uses it instead of calling time.Now() inline.
var now = time.Now
