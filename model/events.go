package model

import "time"

// EventKind names a domain event raised during a tick.
type EventKind string

const (
	EventPlanetConquered       EventKind = "planet_conquered"
	EventFleetLaunched         EventKind = "fleet_launched"
	EventFleetArrived          EventKind = "fleet_arrived"
	EventConstructionStarted   EventKind = "construction_started"
	EventConstructionCancelled EventKind = "construction_cancelled"
	EventBuildingCompleted     EventKind = "building_completed"
	EventResourceInsufficient  EventKind = "resource_insufficient"
	EventVictoryReached        EventKind = "victory_reached"
)

// Event is a notable occurrence for an external shell to announce.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind     `json:"kind"`
	At        time.Duration `json:"at"`
	Faction   Faction       `json:"faction"`
	Planet    PlanetID      `json:"planet"`
	Fleet     FleetID       `json:"fleet,omitempty"`
	Building  string        `json:"building,omitempty"`
	Ships     float64       `json:"ships,omitempty"`
	Previous  Faction       `json:"previous,omitempty"`
	Outcome   string        `json:"outcome,omitempty"`
	Condition string        `json:"condition,omitempty"`
	Detail    string        `json:"detail,omitempty"`
}

// EventSink receives domain events synchronously during a tick. The core
// never depends on what the sink does with them.
type EventSink interface {
	Emit(Event)
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// EventFunc adapts a function to EventSink.
type EventFunc func(Event)

func (f EventFunc) Emit(e Event) { f(e) }

// Recorder keeps every event it receives, in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(e Event) { r.Events = append(r.Events, e) }

// Kinds returns how many events of each kind were recorded.
func (r *Recorder) Kinds() map[EventKind]int {
	out := make(map[EventKind]int)
	for _, e := range r.Events {
		out[e.Kind]++
	}
	return out
}
