package rules

import (
	"math"
	"sort"

	"github.com/nstehr/starfall/starfall-core/building"
	"github.com/nstehr/starfall/starfall-core/economy"
	"github.com/nstehr/starfall/starfall-core/model"
)

// TargetKind classifies a launch target.
type TargetKind string

const (
	TargetNeutral  TargetKind = "neutral"
	TargetEnemy    TargetKind = "enemy"
	TargetFriendly TargetKind = "friendly"
)

// Launch is a scored (origin, target) pair with the ships to commit.
type Launch struct {
	Origin model.PlanetID
	Target model.PlanetID
	Kind   TargetKind
	Ships  int
	Score  float64
}

// Build is a scored construction candidate.
type Build struct {
	Planet   model.PlanetID
	Building building.ID
	Score    float64
}

// buffer shrinks as risk taking grows.
func (e *Engine) buffer() int {
	return lerp(e.params.Buffer+2, e.params.Buffer, e.doctrine.RiskTaking)
}

// PlanLaunch scores every (actionable origin, target) pair under s and
// returns the best. It returns nil when nothing scores above zero.
func (e *Engine) PlanLaunch(env RuleEnv, s Strategy) *Launch {
	var best *Launch
	for _, o := range env.Actionable(e.params.MinAttackForce) {
		available := int(math.Floor(o.Ships))
		for _, t := range env.State.Planets {
			if t.ID == o.ID {
				continue
			}
			c, ok := e.score(env, s, o, t, available)
			if !ok {
				continue
			}
			if best == nil || c.Score > best.Score {
				best = &c
			}
		}
	}
	if best == nil || best.Score <= 0 || best.Ships <= 0 {
		return nil
	}
	return best
}

func (e *Engine) score(env RuleEnv, s Strategy, o, t model.PlanetSnapshot, available int) (Launch, bool) {
	me, enemy := env.Faction, env.Faction.Opponent()
	dist := math.Max(1, model.Distance(o.Position, t.Position))
	mine := env.State.Inbound(t.ID, me)
	l := Launch{Origin: o.ID, Target: t.ID}

	switch {
	case t.BeingConquered && t.Conqueror == me:
		return l, false

	case t.Owner == model.Neutral || t.BeingConquered:
		// Unowned, or an enemy conquest whose garrison can still be beaten.
		needed := int(math.Floor(t.Ships)) + 1
		if mine >= needed || available < needed {
			return l, false
		}
		l.Kind = TargetNeutral
		l.Ships = min(available, needed+e.buffer())
		l.Score = t.Capacity / dist * s.Expansion

	case t.Owned(enemy):
		needed := int(math.Floor(t.Ships)) + 1 - mine
		if needed <= 0 {
			return l, false
		}
		l.Kind = TargetEnemy
		l.Score = float64(available-needed) / dist * t.Capacity * s.Attack
		share := int(math.Ceil(s.CommitShare*float64(available) - 1e-9))
		l.Ships = min(available, max(needed+e.buffer(), share))

	case t.Owned(me):
		deficit := float64(env.State.Inbound(t.ID, enemy)) - t.Ships
		fill := int(math.Ceil(t.Capacity-t.Ships)) - mine
		if deficit <= 0 || fill <= 0 {
			return l, false
		}
		l.Kind = TargetFriendly
		l.Ships = min(available, fill)
		l.Score = deficit / dist * s.Reinforce

	default:
		return l, false
	}

	if env.HasObjective() && t.ID == env.State.Objective.Planet && !t.Owned(me) && l.Score > 0 {
		l.Score *= 1 + s.Objective
	}
	return l, true
}

// PlanBuild picks a construction on an owned planet with a free slot.
// Buildings feeding a scarce resource are boosted. The top two candidates
// are drawn between in proportion to their scores.
func (e *Engine) PlanBuild(env RuleEnv) *Build {
	res := env.State.Resources[e.faction]
	purse := economy.Cost{Metal: res.Metal, Energy: res.Energy}

	type cand struct {
		Build
		capacity float64
	}
	var cands []cand
	for _, p := range env.State.Planets {
		if !p.Owned(e.faction) || len(p.Buildings) >= e.params.MaxBuildings {
			continue
		}
		for _, d := range e.catalog {
			if hasBuilding(p, d.ID) || purse.Metal < d.Cost.Metal || purse.Energy < d.Cost.Energy {
				continue
			}
			cands = append(cands, cand{
				Build:    Build{Planet: p.ID, Building: d.ID, Score: e.buildingScore(d, res)},
				capacity: p.Capacity,
			})
		}
	}
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].capacity > cands[j].capacity
	})

	pick := cands[0].Build
	if len(cands) > 1 {
		a, b := cands[0].Score, cands[1].Score
		if a+b > 0 && e.rng.Float64()*(a+b) >= a {
			pick = cands[1].Build
		}
	}
	if pick.Score <= 0 {
		return nil
	}
	return &pick
}

func (e *Engine) buildingScore(d building.Definition, res model.ResourceSnapshot) float64 {
	boost := 1.0
	switch d.Resource() {
	case "metal":
		if res.Metal < e.params.ScarceBelow {
			boost += e.params.ScarcityBoost
		}
	case "energy":
		if res.Energy < e.params.ScarceBelow {
			boost += e.params.ScarcityBoost
		}
	}
	return d.Priority * boost
}

func hasBuilding(p model.PlanetSnapshot, id building.ID) bool {
	for _, b := range p.Buildings {
		if b.ID == string(id) {
			return true
		}
	}
	return false
}
