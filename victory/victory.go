// Package victory decides when a game is over. Evaluate is a pure function
// of a world view and the active mode's rules.
package victory

import (
	"fmt"
	"math"
	"time"

	"github.com/nstehr/starfall/starfall-core/model"
)

// Condition names one way of winning.
type Condition string

const (
	TotalConquest Condition = "total_conquest"
	Domination    Condition = "domination"
	Economic      Condition = "economic"
	Timed         Condition = "timed"
	Objective     Condition = "objective"
)

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	switch c {
	case TotalConquest, Domination, Economic, Timed, Objective:
		return true
	}
	return false
}

// Rules is a mode's ordered condition list and its parameters. The first
// condition that produces a result wins.
type Rules struct {
	Conditions        []Condition   `yaml:"conditions"`
	DominationPercent float64       `yaml:"domination_percent"`
	EconomicShipRatio float64       `yaml:"economic_ship_ratio"`
	ObjectiveHold     time.Duration `yaml:"objective_hold"`
}

// Validate rejects unknown conditions and missing parameters.
func (r Rules) Validate() error {
	if len(r.Conditions) == 0 {
		return fmt.Errorf("no victory conditions")
	}
	for _, c := range r.Conditions {
		if !c.Valid() {
			return fmt.Errorf("unknown victory condition %q", c)
		}
		switch {
		case c == Domination && (r.DominationPercent <= 0 || r.DominationPercent > 100):
			return fmt.Errorf("domination_percent %.1f outside (0, 100]", r.DominationPercent)
		case c == Economic && r.EconomicShipRatio <= 1:
			return fmt.Errorf("economic_ship_ratio %.2f must exceed 1", r.EconomicShipRatio)
		case c == Objective && r.ObjectiveHold <= 0:
			return fmt.Errorf("objective_hold must be positive")
		}
	}
	return nil
}

// Has reports whether c is part of the rules.
func (r Rules) Has(c Condition) bool {
	for _, have := range r.Conditions {
		if have == c {
			return true
		}
	}
	return false
}

// Result is a finished game.
type Result struct {
	Winner    model.Faction `json:"winner"`
	Draw      bool          `json:"draw"`
	Condition Condition     `json:"condition"`
	Details   string        `json:"details"`
	At        time.Duration `json:"at"`
}

// Evaluate returns the first condition in order that decides the game, or
// nil while it is still running.
func Evaluate(gs model.GameState, r Rules) *Result {
	for _, c := range r.Conditions {
		var res *Result
		switch c {
		case TotalConquest:
			res = totalConquest(gs)
		case Domination:
			res = domination(gs, r.DominationPercent)
		case Economic:
			res = economic(gs, r.EconomicShipRatio)
		case Timed:
			res = timed(gs)
		case Objective:
			res = objective(gs, r.ObjectiveHold)
		}
		if res != nil {
			res.Condition = c
			res.At = gs.Now
			return res
		}
	}
	return nil
}

func totalConquest(gs model.GameState) *Result {
	total := len(gs.Planets)
	if total == 0 {
		return nil
	}
	for _, f := range model.Factions {
		if gs.PlanetCount(f) == total && gs.PlanetCount(f.Opponent()) == 0 {
			return &Result{Winner: f, Details: fmt.Sprintf("%s holds all %d planets", f, total)}
		}
	}
	return nil
}

func domination(gs model.GameState, percent float64) *Result {
	total := len(gs.Planets)
	if total == 0 || percent <= 0 {
		return nil
	}
	var best *Result
	bestShare := 0.0
	for _, f := range model.Factions {
		share := float64(gs.PlanetCount(f)) / float64(total) * 100
		if share >= percent && share > bestShare {
			bestShare = share
			best = &Result{Winner: f, Details: fmt.Sprintf("%s controls %.0f%% of planets", f, share)}
		}
	}
	return best
}

func economic(gs model.GameState, ratio float64) *Result {
	if ratio <= 0 {
		return nil
	}
	for _, f := range model.Factions {
		opp := f.Opponent()
		mine, theirs := gs.ShipCount(f), gs.ShipCount(opp)
		if mine <= 0 || gs.PlanetCount(f) <= gs.PlanetCount(opp) {
			continue
		}
		r := math.Inf(1)
		if theirs > 0 {
			r = mine / theirs
		}
		if r >= ratio {
			return &Result{Winner: f, Details: fmt.Sprintf("%s outnumbers %s %.1f:1 in ships", f, opp, r)}
		}
	}
	return nil
}

func timed(gs model.GameState) *Result {
	if gs.TimeRemaining() != 0 {
		return nil
	}
	player, ai := gs.PlanetCount(model.Player), gs.PlanetCount(model.AI)
	switch {
	case player > ai:
		return &Result{Winner: model.Player, Details: fmt.Sprintf("time up, %d planets to %d", player, ai)}
	case ai > player:
		return &Result{Winner: model.AI, Details: fmt.Sprintf("time up, %d planets to %d", ai, player)}
	}
	return &Result{Winner: model.Neutral, Draw: true, Details: fmt.Sprintf("time up, tied at %d planets", player)}
}

func objective(gs model.GameState, hold time.Duration) *Result {
	o := gs.Objective
	if o.Planet == model.NoPlanet || !o.Holder.Playing() || hold <= 0 || o.Held < hold {
		return nil
	}
	name := fmt.Sprintf("planet %d", o.Planet)
	if p, ok := gs.Planet(o.Planet); ok && p.Name != "" {
		name = p.Name
	}
	return &Result{Winner: o.Holder, Details: fmt.Sprintf("%s held %s for %s", o.Holder, name, o.Held)}
}
