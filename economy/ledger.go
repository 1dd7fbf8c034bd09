// Package economy keeps each faction's metal and energy accounts.
//
// Add and Spend are the only mutation paths. Spend is all-or-nothing and
// never drives a balance negative; Add clamps at the storage cap and
// discards the rest, so unused generation is never banked.
package economy

import (
	"math"

	"github.com/nstehr/starfall/starfall-core/model"
)

// Cost is a price in metal and energy.
type Cost struct {
	Metal  float64 `json:"metal" yaml:"metal"`
	Energy float64 `json:"energy" yaml:"energy"`
}

// Scale multiplies both components by f.
func (c Cost) Scale(f float64) Cost {
	return Cost{Metal: c.Metal * f, Energy: c.Energy * f}
}

// Storage derives a faction's caps from the planets it owns.
type Storage struct {
	BaseMetal         float64 `yaml:"base_metal"`
	BaseEnergy        float64 `yaml:"base_energy"`
	MetalPerCapacity  float64 `yaml:"metal_per_capacity"`
	EnergyPerCapacity float64 `yaml:"energy_per_capacity"`
}

// Caps sums each owned planet's capacity scaled by its storage multiplier.
func (s Storage) Caps(f model.Faction, planets []*model.Planet) (metal, energy float64) {
	metal, energy = s.BaseMetal, s.BaseEnergy
	for _, p := range planets {
		if !p.OwnedBy(f) {
			continue
		}
		scaled := p.Capacity() * p.StorageMultiplier()
		metal += scaled * s.MetalPerCapacity
		energy += scaled * s.EnergyPerCapacity
	}
	return metal, energy
}

type account struct {
	metal, energy       float64
	metalCap, energyCap float64
}

// Ledger holds the accounts of the playing factions.
type Ledger struct {
	accounts map[model.Faction]*account
}

// NewLedger opens an account for every playing faction with the starting
// balance. Caps start unbounded until SetCaps is called.
func NewLedger(start Cost) *Ledger {
	l := &Ledger{accounts: make(map[model.Faction]*account)}
	for _, f := range model.Factions {
		l.accounts[f] = &account{
			metal:     math.Max(0, start.Metal),
			energy:    math.Max(0, start.Energy),
			metalCap:  math.Inf(1),
			energyCap: math.Inf(1),
		}
	}
	return l
}

func (l *Ledger) Metal(f model.Faction) float64 {
	if a := l.accounts[f]; a != nil {
		return a.metal
	}
	return 0
}

func (l *Ledger) Energy(f model.Faction) float64 {
	if a := l.accounts[f]; a != nil {
		return a.energy
	}
	return 0
}

// SetCaps updates storage caps. Balances above a shrunken cap are cut down
// to it.
func (l *Ledger) SetCaps(f model.Faction, metalCap, energyCap float64) {
	a := l.accounts[f]
	if a == nil {
		return
	}
	a.metalCap = math.Max(0, metalCap)
	a.energyCap = math.Max(0, energyCap)
	a.metal = math.Min(a.metal, a.metalCap)
	a.energy = math.Min(a.energy, a.energyCap)
}

// AddMetal credits up to the cap and returns the amount actually credited.
func (l *Ledger) AddMetal(f model.Faction, x float64) float64 {
	a := l.accounts[f]
	if a == nil || x <= 0 {
		return 0
	}
	credited := math.Min(x, math.Max(0, a.metalCap-a.metal))
	a.metal += credited
	return credited
}

// AddEnergy credits up to the cap and returns the amount actually credited.
func (l *Ledger) AddEnergy(f model.Faction, x float64) float64 {
	a := l.accounts[f]
	if a == nil || x <= 0 {
		return 0
	}
	credited := math.Min(x, math.Max(0, a.energyCap-a.energy))
	a.energy += credited
	return credited
}

func (l *Ledger) CanAffordMetal(f model.Faction, x float64) bool {
	a := l.accounts[f]
	return a != nil && x >= 0 && a.metal >= x
}

func (l *Ledger) CanAffordEnergy(f model.Faction, x float64) bool {
	a := l.accounts[f]
	return a != nil && x >= 0 && a.energy >= x
}

// CanAfford reports whether both components of c are covered.
func (l *Ledger) CanAfford(f model.Faction, c Cost) bool {
	return l.CanAffordMetal(f, c.Metal) && l.CanAffordEnergy(f, c.Energy)
}

// SpendMetal debits x or, when the balance is short, changes nothing and
// returns false.
func (l *Ledger) SpendMetal(f model.Faction, x float64) bool {
	if !l.CanAffordMetal(f, x) {
		return false
	}
	l.accounts[f].metal -= x
	return true
}

// SpendEnergy debits x or, when the balance is short, changes nothing and
// returns false.
func (l *Ledger) SpendEnergy(f model.Faction, x float64) bool {
	if !l.CanAffordEnergy(f, x) {
		return false
	}
	l.accounts[f].energy -= x
	return true
}

// Spend debits both components of c together or neither.
func (l *Ledger) Spend(f model.Faction, c Cost) bool {
	if !l.CanAfford(f, c) {
		return false
	}
	a := l.accounts[f]
	a.metal -= c.Metal
	a.energy -= c.Energy
	return true
}

// Refund credits rate × c back through the capped Add path.
func (l *Ledger) Refund(f model.Faction, c Cost, rate float64) Cost {
	r := c.Scale(rate)
	return Cost{
		Metal:  l.AddMetal(f, r.Metal),
		Energy: l.AddEnergy(f, r.Energy),
	}
}

// Generate credits one economy tick of income from f's owned planets and
// returns what was actually credited. Income past the cap is lost.
func (l *Ledger) Generate(f model.Faction, planets []*model.Planet) Cost {
	var income Cost
	for _, p := range planets {
		if !p.OwnedBy(f) {
			continue
		}
		income.Metal += p.MetalRate()
		income.Energy += p.EnergyRate()
	}
	return Cost{
		Metal:  l.AddMetal(f, income.Metal),
		Energy: l.AddEnergy(f, income.Energy),
	}
}

// Snapshot returns f's balances and caps.
func (l *Ledger) Snapshot(f model.Faction) model.ResourceSnapshot {
	a := l.accounts[f]
	if a == nil {
		return model.ResourceSnapshot{}
	}
	return model.ResourceSnapshot{
		Metal:     a.metal,
		Energy:    a.energy,
		MetalCap:  a.metalCap,
		EnergyCap: a.energyCap,
	}
}
