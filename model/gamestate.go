package model

import "time"

// GameState is a read-only view of the world handed to the AI engine and
// the victory evaluator. It holds copies, never live entities.
type GameState struct {
	Now       time.Duration                `json:"now"`
	TimeLimit time.Duration                `json:"timeLimit,omitempty"`
	Planets   []PlanetSnapshot             `json:"planets"`
	Fleets    []FleetSnapshot              `json:"fleets"`
	Resources map[Faction]ResourceSnapshot `json:"resources"`
	Objective ObjectiveStatus              `json:"objective"`
}

// ObjectiveStatus tracks continuous control of the designated planet.
type ObjectiveStatus struct {
	Planet PlanetID      `json:"planet"`
	Holder Faction       `json:"holder"`
	Held   time.Duration `json:"held"`
}

// PlanetSnapshot is what the renderer reads once per frame.
type PlanetSnapshot struct {
	ID               PlanetID           `json:"id"`
	Name             string             `json:"name"`
	Position         Vec2               `json:"position"`
	Radius           float64            `json:"radius"`
	Owner            Faction            `json:"owner"`
	Ships            float64            `json:"ships"`
	Capacity         float64            `json:"capacity"`
	Buildings        []BuildingSnapshot `json:"buildings"`
	ConquestProgress float64            `json:"conquestProgress"`
	Conqueror        Faction            `json:"conqueror"`
	BeingConquered   bool               `json:"beingConquered"`
	ProductionRate   float64            `json:"productionRate"`
}

// BuildingSnapshot is one construction record on a planet.
type BuildingSnapshot struct {
	ID           string  `json:"id"`
	Constructing bool    `json:"constructing"`
	Progress     float64 `json:"progress"`
	Level        int     `json:"level"`
}

// FleetSnapshot is what the renderer reads once per frame.
type FleetSnapshot struct {
	ID          FleetID       `json:"id"`
	Origin      PlanetID      `json:"origin"`
	Destination PlanetID      `json:"destination"`
	Position    Vec2          `json:"position"`
	Owner       Faction       `json:"owner"`
	ShipCount   int           `json:"shipCount"`
	Progress    float64       `json:"progress"`
	ArrivesAt   time.Duration `json:"arrivesAt"`
}

// ResourceSnapshot is one faction's balances and storage caps.
type ResourceSnapshot struct {
	Metal     float64 `json:"metal"`
	Energy    float64 `json:"energy"`
	MetalCap  float64 `json:"metalCap"`
	EnergyCap float64 `json:"energyCap"`
}

// Planet looks up a planet snapshot by id.
func (gs GameState) Planet(id PlanetID) (PlanetSnapshot, bool) {
	if id < 0 || int(id) >= len(gs.Planets) || gs.Planets[id].ID != id {
		for _, p := range gs.Planets {
			if p.ID == id {
				return p, true
			}
		}
		return PlanetSnapshot{}, false
	}
	return gs.Planets[id], true
}

// Owned reports whether f fully owns p (no conquest in progress).
func (p PlanetSnapshot) Owned(f Faction) bool {
	return f != Neutral && p.Owner == f && !p.BeingConquered
}

// PlanetCount counts planets owned by f. Planets still being conquered are
// not counted for anyone.
func (gs GameState) PlanetCount(f Faction) int {
	n := 0
	for _, p := range gs.Planets {
		if p.Owned(f) {
			n++
		}
	}
	return n
}

// ShipCount totals f's ships on owned planets and in flight.
func (gs GameState) ShipCount(f Faction) float64 {
	total := 0.0
	for _, p := range gs.Planets {
		if p.Owned(f) || (p.BeingConquered && p.Conqueror == f) {
			total += p.Ships
		}
	}
	for _, fl := range gs.Fleets {
		if fl.Owner == f {
			total += float64(fl.ShipCount)
		}
	}
	return total
}

// Inbound totals ships of faction f currently flying to planet id.
func (gs GameState) Inbound(id PlanetID, f Faction) int {
	n := 0
	for _, fl := range gs.Fleets {
		if fl.Destination == id && fl.Owner == f {
			n += fl.ShipCount
		}
	}
	return n
}

// TimeRemaining is the clock left in timed games, or -1 when untimed.
func (gs GameState) TimeRemaining() time.Duration {
	if gs.TimeLimit <= 0 {
		return -1
	}
	if gs.Now >= gs.TimeLimit {
		return 0
	}
	return gs.TimeLimit - gs.Now
}
