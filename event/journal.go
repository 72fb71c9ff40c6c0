package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Record is the payload handed to a Sink for one mirrored event.
type Record struct {
	RaceID uuid.UUID
	Event  Event
}

// Sink is the durable store's narrow event-write surface, consumed
// asynchronously by the journal's mirror worker. A failure to persist must
// be logged but must never abort the tick that produced the event.
type Sink interface {
	CreateEvent(ctx context.Context, rec Record) error
}

// mirrorQueueSize bounds the async mirror queue; a full queue drops the
// oldest pending write rather than block the tick (the in-memory journal
// stays authoritative regardless).
const mirrorQueueSize = 256

// Journal is the in-memory, append-only sequence of Events for one race,
// optionally mirrored to a durable Sink.
type Journal struct {
	events []Event
	raceID *uuid.UUID
	sink   Sink
	queue  chan Record
	log    zerolog.Logger
}

// New returns an empty Journal. Call BindDurable to attach a race identity
// and sink once one is known; a Journal with neither never attempts a
// durable write.
func New(log zerolog.Logger) *Journal {
	return &Journal{log: log}
}

// BindDurable attaches the durable race identity and sink, starting the
// background mirror worker. Safe to call once per Journal lifetime.
func (j *Journal) BindDurable(raceID uuid.UUID, sink Sink) {
	j.raceID = &raceID
	j.sink = sink
	j.queue = make(chan Record, mirrorQueueSize)
	go j.mirrorLoop()
}

func (j *Journal) mirrorLoop() {
	for rec := range j.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := j.sink.CreateEvent(ctx, rec)
		cancel()
		if err != nil {
			j.log.Error().Err(err).
				Uint64("event_id", rec.Event.ID).
				Str("event_type", rec.Event.Type.String()).
				Msg("failed to persist race event; in-memory journal remains authoritative")
		}
	}
}

// Append assigns a monotonic ID and the current tick's time offset, pushes
// the event into the in-memory sequence, and — if a durable identity and
// sink are bound — dispatches a fire-and-forget mirrored write. It never
// blocks on the durable store.
func (j *Journal) Append(typ Type, description string, tickCount uint64, tickDurationSeconds float32, data Data) Event {
	data.TimeOffsetSeconds = float32(tickCount) * tickDurationSeconds
	ev := Event{
		ID:          uint64(len(j.events)),
		Type:        typ,
		Description: description,
		Data:        data,
	}
	j.events = append(j.events, ev)

	if j.raceID != nil && j.sink != nil {
		rec := Record{RaceID: *j.raceID, Event: ev}
		select {
		case j.queue <- rec:
		default:
			j.log.Warn().
				Uint64("event_id", ev.ID).
				Msg("event mirror queue full; dropping oldest pending write")
			select {
			case <-j.queue:
			default:
			}
			select {
			case j.queue <- rec:
			default:
			}
		}
	}
	return ev
}

// Events returns the full in-memory event sequence in append order.
func (j *Journal) Events() []Event {
	out := make([]Event, len(j.events))
	copy(out, j.events)
	return out
}

// Len reports the number of events appended so far.
func (j *Journal) Len() int { return len(j.events) }
