package world

import (
	"log/slog"
	"time"

	"github.com/nstehr/starfall/starfall-core/model"
	"github.com/nstehr/starfall/starfall-core/victory"
)

// physics runs every tick: building completions first so their modifiers
// are in place before production reads them, then conquest timers and
// production, then fleet arrivals, then objective tracking.
func (w *World) physics(now time.Duration) error {
	dt := now - w.lastPhysics
	w.lastPhysics = now

	for _, c := range w.buildings.UpdateConstructions(now, w.planets) {
		w.refreshCaps(c.Owner)
		w.emit(model.Event{
			Kind:     model.EventBuildingCompleted,
			Faction:  c.Owner,
			Planet:   c.Planet,
			Building: string(c.Building),
		})
	}

	for _, p := range w.planets {
		if p.AdvanceConquest(dt) {
			w.conquered(p, model.Neutral)
			continue
		}
		p.Produce(dt, w.mode.ProductionBonus.For(p.Owner()))
	}

	w.moveFleets(now)
	w.trackObjective(dt)
	return nil
}

// moveFleets takes arrived fleets out of the table before resolving any
// of them, so a failing arrival cannot leave resolved fleets in flight.
func (w *World) moveFleets(now time.Duration) {
	kept := make([]*model.Fleet, 0, len(w.fleets))
	var arrived []*model.Fleet
	for _, f := range w.fleets {
		if f.Advance(now) {
			arrived = append(arrived, f)
			continue
		}
		kept = append(kept, f)
	}
	w.fleets = kept
	for _, f := range arrived {
		w.arrive(f)
	}
}

func (w *World) arrive(f *model.Fleet) {
	p := w.planets[f.Destination()]
	res := p.Arrive(f.Owner(), float64(f.Ships()), w.consts.ConquestTime)
	w.emit(model.Event{
		Kind:     model.EventFleetArrived,
		Faction:  f.Owner(),
		Planet:   p.ID(),
		Fleet:    f.ID(),
		Ships:    float64(f.Ships()),
		Previous: res.PreviousOwner,
		Outcome:  res.Outcome.String(),
	})
	slog.Debug("fleet arrived",
		"fleet", f.ID(),
		"planet", p.ID(),
		"faction", f.Owner(),
		"ships", f.Ships(),
		"outcome", res.Outcome,
		"interrupted", res.Interrupted,
	)
	if res.Owner != res.PreviousOwner && res.Owner.Playing() {
		w.conquered(p, res.PreviousOwner)
	}
}

// conquered handles an ownership change. Buildings do not survive a
// change of hands.
func (w *World) conquered(p *model.Planet, previous model.Faction) {
	if n := w.buildings.ResetPlanet(p); n > 0 {
		slog.Debug("buildings lost", "planet", p.ID(), "count", n)
	}
	for _, f := range model.Factions {
		w.refreshCaps(f)
	}
	w.emit(model.Event{
		Kind:     model.EventPlanetConquered,
		Faction:  p.Owner(),
		Planet:   p.ID(),
		Previous: previous,
		Ships:    p.Ships(),
	})
	slog.Info("planet conquered", "planet", p.Name(), "by", p.Owner(), "from", previous, "ships", p.Ships())
}

func (w *World) trackObjective(dt time.Duration) {
	if w.objective.Planet == model.NoPlanet {
		return
	}
	p := w.planets[w.objective.Planet]
	holder := model.Neutral
	if p.OwnedBy(p.Owner()) {
		holder = p.Owner()
	}
	if holder != w.objective.Holder {
		w.objective.Holder = holder
		w.objective.Held = 0
		return
	}
	if holder != model.Neutral {
		w.objective.Held += dt
	}
}

// snapshot evaluates victory and hands a frame to the renderer.
func (w *World) snapshot(now time.Duration) error {
	gs := w.State()
	if res := victory.Evaluate(gs, w.mode.Victory); res != nil {
		w.result = res
		w.emit(model.Event{
			Kind:      model.EventVictoryReached,
			Faction:   res.Winner,
			Condition: string(res.Condition),
			Detail:    res.Details,
		})
		slog.Info("victory reached", "winner", res.Winner, "draw", res.Draw, "condition", res.Condition, "details", res.Details)
	}
	w.renderer.Frame(gs)
	return nil
}

func (w *World) think(now time.Duration) error {
	if w.result != nil {
		return nil
	}
	_, err := w.ai.Evaluate(w.State(), w)
	return err
}

func (w *World) economy(now time.Duration) error {
	if w.result != nil {
		return nil
	}
	for _, f := range model.Factions {
		w.refreshCaps(f)
		got := w.ledger.Generate(f, w.planets)
		slog.Debug("economy tick", "faction", f, "metal", got.Metal, "energy", got.Energy)
	}
	return nil
}
