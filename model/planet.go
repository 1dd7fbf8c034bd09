package model

import (
	"math"
	"time"
)

// PlanetID indexes a planet in the world's planet table.
type PlanetID int

// NoPlanet marks an absent planet reference.
const NoPlanet PlanetID = -1

// EffectType names the planet modifier a building changes.
type EffectType string

const (
	EffectProductionRate EffectType = "production_rate"
	EffectMetalRate      EffectType = "metal_rate"
	EffectEnergyRate     EffectType = "energy_rate"
	EffectStorage        EffectType = "storage"
)

// Effect is an additive modifier applied to a planet by a completed building.
type Effect struct {
	Type      EffectType `json:"type" yaml:"type"`
	Magnitude float64    `json:"magnitude" yaml:"magnitude"`
}

// Modifiers are the building bonuses stacked on a planet. Each multiplier
// is 1 + the matching field.
type Modifiers struct {
	Production float64
	Metal      float64
	Energy     float64
	Storage    float64
}

// Conquest tracks an uncontested arrival turning a neutral planet over to
// the conqueror once Remaining reaches zero.
type Conquest struct {
	Active    bool
	Conqueror Faction
	Remaining time.Duration
	Total     time.Duration
}

// PlanetSpec is the static description a planet is built from.
type PlanetSpec struct {
	Name           string  `yaml:"name"`
	Position       Vec2    `yaml:"position"`
	Radius         float64 `yaml:"radius"`
	Capacity       float64 `yaml:"capacity"`
	Ships          float64 `yaml:"ships"`
	Owner          Faction `yaml:"owner"`
	ProductionRate float64 `yaml:"production_rate"` // ships per second
	MetalRate      float64 `yaml:"metal_rate"`      // per economy tick
	EnergyRate     float64 `yaml:"energy_rate"`     // per economy tick
}

// Planet is a territory node. All mutation goes through its methods so
// ownership only changes through the arrival and conquest transitions.
type Planet struct {
	id       PlanetID
	name     string
	pos      Vec2
	radius   float64
	capacity float64
	ships    float64
	owner    Faction
	conquest Conquest

	baseProduction float64
	baseMetal      float64
	baseEnergy     float64
	mods           Modifiers

	productionClock time.Duration
}

// NewPlanet builds a planet from a PlanetSpec, clamping the starting garrison.
func NewPlanet(id PlanetID, spec PlanetSpec) *Planet {
	p := &Planet{
		id:             id,
		name:           spec.Name,
		pos:            spec.Position,
		radius:         spec.Radius,
		capacity:       spec.Capacity,
		owner:          spec.Owner,
		baseProduction: spec.ProductionRate,
		baseMetal:      spec.MetalRate,
		baseEnergy:     spec.EnergyRate,
	}
	p.setShips(spec.Ships)
	return p
}

func (p *Planet) ID() PlanetID       { return p.id }
func (p *Planet) Name() string       { return p.name }
func (p *Planet) Position() Vec2     { return p.pos }
func (p *Planet) Radius() float64    { return p.radius }
func (p *Planet) Capacity() float64  { return p.capacity }
func (p *Planet) Ships() float64     { return p.ships }
func (p *Planet) Owner() Faction     { return p.owner }
func (p *Planet) Conquest() Conquest { return p.conquest }
func (p *Planet) Modifiers() Modifiers {
	return p.mods
}

// BeingConquered reports whether a conquest timer is running.
func (p *Planet) BeingConquered() bool { return p.conquest.Active }

// OwnedBy reports whether f fully owns the planet.
func (p *Planet) OwnedBy(f Faction) bool {
	return f != Neutral && p.owner == f && !p.conquest.Active
}

// ProductionMultiplier is the building bonus on ship production.
func (p *Planet) ProductionMultiplier() float64 { return 1 + p.mods.Production }

// StorageMultiplier scales the storage this planet contributes.
func (p *Planet) StorageMultiplier() float64 { return 1 + p.mods.Storage }

// MetalRate is the metal generated per economy tick.
func (p *Planet) MetalRate() float64 { return p.baseMetal * (1 + p.mods.Metal) }

// EnergyRate is the energy generated per economy tick.
func (p *Planet) EnergyRate() float64 { return p.baseEnergy * (1 + p.mods.Energy) }

// EffectiveRate is ships per second once building and mode bonuses apply.
func (p *Planet) EffectiveRate(modeBonus float64) float64 {
	return p.baseProduction * p.ProductionMultiplier() * modeBonus
}

// ConquestProgress is 0–1 while being conquered and 0 otherwise.
func (p *Planet) ConquestProgress() float64 {
	if !p.conquest.Active || p.conquest.Total <= 0 {
		return 0
	}
	return 1 - float64(p.conquest.Remaining)/float64(p.conquest.Total)
}

// ApplyEffect adds a building modifier.
func (p *Planet) ApplyEffect(e Effect) {
	p.adjust(e.Type, e.Magnitude)
}

// RemoveEffect is the exact inverse of ApplyEffect.
func (p *Planet) RemoveEffect(e Effect) {
	p.adjust(e.Type, -e.Magnitude)
}

func (p *Planet) adjust(t EffectType, delta float64) {
	switch t {
	case EffectProductionRate:
		p.mods.Production += delta
	case EffectMetalRate:
		p.mods.Metal += delta
	case EffectEnergyRate:
		p.mods.Energy += delta
	case EffectStorage:
		p.mods.Storage += delta
	}
}

// Produce advances the production clock by dt and adds one ship for every
// full production interval. Time, not call count, drives output, so the
// same elapsed time yields the same ships at any frame rate. Returns the
// number of ships built.
func (p *Planet) Produce(dt time.Duration, modeBonus float64) int {
	if p.owner == Neutral || p.conquest.Active || dt <= 0 {
		return 0
	}
	rate := p.EffectiveRate(modeBonus)
	if rate <= 0 {
		return 0
	}
	if p.ships >= p.capacity {
		p.productionClock = 0
		return 0
	}

	interval := time.Duration(float64(time.Second) / rate)
	if interval <= 0 {
		interval = 1
	}
	p.productionClock += dt

	built := 0
	for p.productionClock >= interval && p.ships < p.capacity {
		p.productionClock -= interval
		p.setShips(p.ships + 1)
		built++
	}
	// No banking of production while full.
	if p.ships >= p.capacity {
		p.productionClock = 0
	}
	return built
}

// AdvanceConquest counts the conquest timer down by dt. When it expires the
// conqueror takes ownership and the production clock restarts.
func (p *Planet) AdvanceConquest(dt time.Duration) (completed bool) {
	if !p.conquest.Active {
		return false
	}
	p.conquest.Remaining -= dt
	if p.conquest.Remaining > 0 {
		return false
	}
	p.owner = p.conquest.Conqueror
	p.conquest = Conquest{}
	p.productionClock = 0
	return true
}

// ArrivalOutcome describes how a fleet arrival resolved.
type ArrivalOutcome int

const (
	ArrivalReinforced ArrivalOutcome = iota
	ArrivalDefended
	ArrivalCaptured
	ArrivalConquestStarted
)

func (o ArrivalOutcome) String() string {
	switch o {
	case ArrivalReinforced:
		return "reinforced"
	case ArrivalDefended:
		return "defended"
	case ArrivalCaptured:
		return "captured"
	case ArrivalConquestStarted:
		return "conquest_started"
	}
	return "unknown"
}

// Arrival is the result of resolving one fleet against a planet.
type Arrival struct {
	Outcome       ArrivalOutcome
	PreviousOwner Faction
	Owner         Faction
	// Interrupted is set when a running conquest was aborted by a
	// different faction.
	Interrupted bool
	Ships       float64
}

// Arrive resolves incoming ships owned by by against the planet.
func (p *Planet) Arrive(by Faction, incoming float64, conquestTime time.Duration) (res Arrival) {
	res.PreviousOwner = p.owner
	defer func() {
		res.Owner = p.owner
		res.Ships = p.ships
	}()

	if p.conquest.Active {
		if p.conquest.Conqueror == by {
			p.setShips(math.Min(p.capacity, p.ships+incoming))
			res.Outcome = ArrivalReinforced
			return res
		}
		// A different faction aborts the conquest and fights the garrison.
		res.Interrupted = true
		defender := p.conquest.Conqueror
		p.conquest = Conquest{}
		res.Outcome = p.contestNeutral(by, defender, incoming, conquestTime)
		return res
	}

	switch {
	case p.owner == Neutral:
		res.Outcome = p.contestNeutral(by, Neutral, incoming, conquestTime)
	case p.owner == by:
		p.setShips(math.Min(p.capacity, p.ships+incoming))
		res.Outcome = ArrivalReinforced
	case incoming > p.ships:
		p.owner = by
		p.setShips(math.Min(p.capacity, incoming-p.ships))
		p.productionClock = 0
		res.Outcome = ArrivalCaptured
	default:
		p.setShips(p.ships - incoming)
		res.Outcome = ArrivalDefended
	}
	return res
}

// contestNeutral fights the garrison of an unowned planet. The garrison is
// either neutral or the force of an aborted conquest. Survivors of the
// winning side (re)start the conquest with a full timer.
func (p *Planet) contestNeutral(by, defender Faction, incoming float64, conquestTime time.Duration) ArrivalOutcome {
	if incoming > p.ships {
		p.startConquest(by, incoming-p.ships, conquestTime)
		return ArrivalConquestStarted
	}
	p.setShips(p.ships - incoming)
	if defender != Neutral && p.ships > 0 {
		p.startConquest(defender, p.ships, conquestTime)
	}
	return ArrivalDefended
}

func (p *Planet) startConquest(by Faction, ships float64, conquestTime time.Duration) {
	p.setShips(math.Min(p.capacity, ships))
	p.conquest = Conquest{
		Active:    true,
		Conqueror: by,
		Remaining: conquestTime,
		Total:     conquestTime,
	}
	if conquestTime <= 0 {
		p.AdvanceConquest(0)
	}
}

// LaunchShips removes ships for a departing fleet. Callers validate the
// amount first; an overdraw is an internal bug.
func (p *Planet) LaunchShips(n float64) {
	Invariant(n >= 0 && n <= p.ships, "planet %d launching %.2f of %.2f ships", p.id, n, p.ships)
	p.setShips(p.ships - n)
}

func (p *Planet) setShips(v float64) {
	Invariant(v >= -1e-9 && v <= p.capacity+1e-9, "planet %d ships %.2f outside [0, %.2f]", p.id, v, p.capacity)
	p.ships = math.Max(0, math.Min(p.capacity, v))
}

// Snapshot returns the read-only view consumed by renderers and the AI.
// Buildings are filled in by the owner of the construction queue.
func (p *Planet) Snapshot() PlanetSnapshot {
	return PlanetSnapshot{
		ID:               p.id,
		Name:             p.name,
		Position:         p.pos,
		Radius:           p.radius,
		Owner:            p.owner,
		Ships:            p.ships,
		Capacity:         p.capacity,
		ConquestProgress: p.ConquestProgress(),
		Conqueror:        p.conquest.Conqueror,
		BeingConquered:   p.conquest.Active,
		ProductionRate:   p.baseProduction * p.ProductionMultiplier(),
	}
}
