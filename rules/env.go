package rules

import (
	"github.com/nstehr/starfall/starfall-core/model"
)

// RuleEnv wraps a world view and exposes the signals callable from expr
// expressions, always from Faction's point of view.
type RuleEnv struct {
	State   model.GameState
	Faction model.Faction
}

// TerritoryRatio is the share of all planets Faction owns.
func (e RuleEnv) TerritoryRatio() float64 {
	if len(e.State.Planets) == 0 {
		return 0
	}
	return float64(e.State.PlanetCount(e.Faction)) / float64(len(e.State.Planets))
}

// ShipRatio compares Faction's ships with the opponent's. An opponent with
// no ships left counts as one.
func (e RuleEnv) ShipRatio() float64 {
	theirs := e.State.ShipCount(e.Faction.Opponent())
	if theirs < 1 {
		theirs = 1
	}
	return e.State.ShipCount(e.Faction) / theirs
}

// TimeRemainingRatio is the remaining share of a timed game, or 1 when
// the game is untimed.
func (e RuleEnv) TimeRemainingRatio() float64 {
	rem := e.State.TimeRemaining()
	if rem < 0 || e.State.TimeLimit <= 0 {
		return 1
	}
	return float64(rem) / float64(e.State.TimeLimit)
}

func (e RuleEnv) HasObjective() bool {
	return e.State.Objective.Planet != model.NoPlanet
}

func (e RuleEnv) ControlsObjective() bool {
	if !e.HasObjective() {
		return false
	}
	p, ok := e.State.Planet(e.State.Objective.Planet)
	return ok && p.Owned(e.Faction)
}

// ThreatenedPlanets counts owned planets with more enemy ships inbound
// than they hold.
func (e RuleEnv) ThreatenedPlanets() int {
	return len(e.Threatened())
}

// Threatened returns the owned planets ThreatenedPlanets counts.
func (e RuleEnv) Threatened() []model.PlanetSnapshot {
	var out []model.PlanetSnapshot
	enemy := e.Faction.Opponent()
	for _, p := range e.State.Planets {
		if p.Owned(e.Faction) && float64(e.State.Inbound(p.ID, enemy)) > p.Ships {
			out = append(out, p)
		}
	}
	return out
}

func (e RuleEnv) NeutralCount() int {
	n := 0
	for _, p := range e.State.Planets {
		if p.Owner == model.Neutral && !p.BeingConquered {
			n++
		}
	}
	return n
}

func (e RuleEnv) EnemyPlanets() int {
	return e.State.PlanetCount(e.Faction.Opponent())
}

func (e RuleEnv) OwnPlanets() int {
	return e.State.PlanetCount(e.Faction)
}

// Actionable returns owned planets holding more than minForce ships.
func (e RuleEnv) Actionable(minForce float64) []model.PlanetSnapshot {
	var out []model.PlanetSnapshot
	for _, p := range e.State.Planets {
		if p.Owned(e.Faction) && p.Ships > minForce {
			out = append(out, p)
		}
	}
	return out
}
