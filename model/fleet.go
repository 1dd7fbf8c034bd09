package model

import (
	"math"
	"time"
)

// FleetID identifies a fleet in transit.
type FleetID int

// Fleet is a group of ships travelling between two planets. It refers to
// its endpoints by id only; the world owns the planets.
type Fleet struct {
	id          FleetID
	origin      PlanetID
	destination PlanetID
	from, to    Vec2
	ships       int
	owner       Faction
	departure   time.Duration
	travel      time.Duration
	progress    float64
	arrived     bool
}

// NewFleet creates a fleet departing at now. Travel time is distance/speed
// with speed in map units per second.
func NewFleet(id FleetID, origin, destination *Planet, ships int, owner Faction, now time.Duration, speed float64) *Fleet {
	return &Fleet{
		id:          id,
		origin:      origin.ID(),
		destination: destination.ID(),
		from:        origin.Position(),
		to:          destination.Position(),
		ships:       ships,
		owner:       owner,
		departure:   now,
		travel:      TravelTime(Distance(origin.Position(), destination.Position()), speed),
	}
}

// TravelTime converts a distance into a flight duration.
func TravelTime(distance, speed float64) time.Duration {
	if speed <= 0 {
		return 0
	}
	return time.Duration(distance / speed * float64(time.Second))
}

func (f *Fleet) ID() FleetID              { return f.id }
func (f *Fleet) Origin() PlanetID         { return f.origin }
func (f *Fleet) Destination() PlanetID    { return f.destination }
func (f *Fleet) Ships() int               { return f.ships }
func (f *Fleet) Owner() Faction           { return f.owner }
func (f *Fleet) Departure() time.Duration { return f.departure }
func (f *Fleet) TravelTime() time.Duration {
	return f.travel
}
func (f *Fleet) ArrivesAt() time.Duration { return f.departure + f.travel }
func (f *Fleet) Progress() float64        { return f.progress }
func (f *Fleet) Arrived() bool            { return f.arrived }

// Position interpolates along the flight path at the last update.
func (f *Fleet) Position() Vec2 {
	return Lerp(f.from, f.to, f.progress)
}

// Advance moves the fleet to now. It returns true exactly once, on the
// update where the fleet reaches its destination; the caller resolves the
// arrival and discards the fleet.
func (f *Fleet) Advance(now time.Duration) bool {
	if f.arrived {
		return false
	}
	if f.travel <= 0 {
		f.progress = 1
	} else {
		f.progress = math.Min(1, math.Max(0, float64(now-f.departure)/float64(f.travel)))
	}
	if f.progress < 1 {
		return false
	}
	f.arrived = true
	return true
}

// Snapshot returns the read-only view consumed by renderers and the AI.
func (f *Fleet) Snapshot() FleetSnapshot {
	return FleetSnapshot{
		ID:          f.id,
		Origin:      f.origin,
		Destination: f.destination,
		Position:    f.Position(),
		Owner:       f.owner,
		ShipCount:   f.ships,
		Progress:    f.progress,
		ArrivesAt:   f.ArrivesAt(),
	}
}

// MovementCost is the energy price of moving ships over distance. Both
// factions pay it, which ties combat tempo to the economy.
func MovementCost(ships int, distance, baseCost, distanceCost float64) int {
	n := float64(ships)
	cost := n*baseCost + distance*n*distanceCost
	// Guard against float noise pushing an exact integer up a unit.
	return int(math.Ceil(cost - 1e-9))
}
