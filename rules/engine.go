package rules

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math/rand"
	"sort"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/starfall/starfall-core/building"
	"github.com/nstehr/starfall/starfall-core/model"
)

// Commander is the command surface the AI acts through. The world passes
// itself so AI launches are validated and paid for exactly like the
// player's.
type Commander interface {
	LaunchFleet(by model.Faction, origin, dest model.PlanetID, ships int) error
	StartConstruction(by model.Faction, planet model.PlanetID, id building.ID) error
	Resources(f model.Faction) model.ResourceSnapshot
}

// Params are the balance constants the engine scores with.
type Params struct {
	MinAttackForce float64
	Buffer         int // extra ships sent beyond the minimum needed
	MaxBuildings   int // building slots per planet
	ScarceBelow    float64
	ScarcityBoost  float64
}

// Decision records what one cycle chose. Launch and Build are nil when no
// candidate was worth acting on.
type Decision struct {
	Strategy string
	Rule     string
	Launch   *Launch
	Build    *Build
}

// Engine picks a strategy each cycle and turns it into at most one fleet
// launch and one construction.
type Engine struct {
	faction    model.Faction
	doctrine   Doctrine
	rules      []*Rule
	strategies map[string]Strategy
	params     Params
	catalog    []building.Definition
	rng        *rand.Rand
	current    string
}

// NewEngine compiles the personality's rules into expr bytecode and sorts
// them by priority. seed drives the building tie-break.
func NewEngine(faction model.Faction, d Doctrine, params Params, catalog []building.Definition, seed int64) (*Engine, error) {
	d.Validate()
	compiled, err := compileRules(CompileDoctrine(d))
	if err != nil {
		return nil, err
	}
	return &Engine{
		faction:    faction,
		doctrine:   d,
		rules:      compiled,
		strategies: Strategies(d),
		params:     params,
		catalog:    catalog,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

func (e *Engine) Faction() model.Faction { return e.faction }
func (e *Engine) Doctrine() Doctrine     { return e.doctrine }

// Interval is the personality's decision cadence.
func (e *Engine) Interval() time.Duration { return e.doctrine.DecisionInterval() }

// Evaluate runs one decision cycle against gs. Rejected commands are
// expected (the world may have moved on since gs was taken) and only
// logged; any other command error is returned.
func (e *Engine) Evaluate(gs model.GameState, cmd Commander) (Decision, error) {
	env := RuleEnv{State: gs, Faction: e.faction}
	rule, strat := e.SelectStrategy(env)
	dec := Decision{Strategy: strat.Name, Rule: rule}

	if strat.Name != e.current {
		slog.Info("ai strategy changed", "faction", e.faction, "from", e.current, "to", strat.Name, "rule", rule)
		e.current = strat.Name
	}

	var errs []error
	if l := e.PlanLaunch(env, strat); l != nil {
		err := cmd.LaunchFleet(e.faction, l.Origin, l.Target, l.Ships)
		switch {
		case err == nil:
			dec.Launch = l
			slog.Debug("ai launch", "origin", l.Origin, "target", l.Target, "ships", l.Ships, "kind", l.Kind, "score", l.Score)
			// The launch paid energy; plan the build against what is left.
			env.State.Resources = maps.Clone(env.State.Resources)
			if env.State.Resources == nil {
				env.State.Resources = make(map[model.Faction]model.ResourceSnapshot)
			}
			env.State.Resources[e.faction] = cmd.Resources(e.faction)
		case isRejection(err):
			slog.Debug("ai launch rejected", "origin", l.Origin, "target", l.Target, "error", err)
		default:
			errs = append(errs, fmt.Errorf("launch fleet: %w", err))
		}
	}

	if b := e.PlanBuild(env); b != nil {
		err := cmd.StartConstruction(e.faction, b.Planet, b.Building)
		switch {
		case err == nil:
			dec.Build = b
			slog.Debug("ai construction", "planet", b.Planet, "building", b.Building, "score", b.Score)
		case isRejection(err):
			slog.Debug("ai construction rejected", "planet", b.Planet, "building", b.Building, "error", err)
		default:
			errs = append(errs, fmt.Errorf("start construction: %w", err))
		}
	}
	return dec, errors.Join(errs...)
}

// SelectStrategy returns the first matching rule's strategy. A rule whose
// condition fails to run is logged and skipped.
func (e *Engine) SelectStrategy(env RuleEnv) (string, Strategy) {
	for _, r := range e.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		if match, ok := result.(bool); ok && match {
			if s, ok := e.strategies[r.Strategy]; ok {
				return r.Name, s
			}
		}
	}
	return "", e.strategies[StrategyBalanced]
}

func isRejection(err error) bool {
	_, ok := model.AsRejection(err)
	return ok
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
