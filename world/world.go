// Package world owns every entity of a running game and drives it through
// the scheduler's passes. It is single-threaded: callers serialise access.
package world

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nstehr/starfall/starfall-core/building"
	"github.com/nstehr/starfall/starfall-core/config"
	"github.com/nstehr/starfall/starfall-core/economy"
	"github.com/nstehr/starfall/starfall-core/model"
	"github.com/nstehr/starfall/starfall-core/rules"
	"github.com/nstehr/starfall/starfall-core/victory"
)

// Pass names.
const (
	PassPhysics  = "physics"
	PassSnapshot = "snapshot"
	PassAI       = "ai"
	PassEconomy  = "economy"
)

// Renderer receives a world view from every snapshot pass.
type Renderer interface {
	Frame(model.GameState)
}

// NopRenderer discards frames.
type NopRenderer struct{}

func (NopRenderer) Frame(model.GameState) {}

// Options configure a new World.
type Options struct {
	Balance     *config.Balance
	Mode        string
	Personality string
	Seed        int64
	Sink        model.EventSink
	Renderer    Renderer
}

// World is the game: planets indexed by PlanetID, fleets in flight, the
// ledger, the construction queue, and the AI.
type World struct {
	consts   config.Constants
	mode     config.Mode
	modeName string

	planets   []*model.Planet
	fleets    []*model.Fleet
	nextFleet model.FleetID

	ledger    *economy.Ledger
	buildings *building.Manager
	ai        *rules.Engine
	sched     *Scheduler

	sink     model.EventSink
	renderer Renderer

	now         time.Duration
	lastPhysics time.Duration
	objective   model.ObjectiveStatus
	result      *victory.Result
}

// New builds a world from the balance's map in the chosen mode.
func New(opts Options) (*World, error) {
	b := opts.Balance
	if b == nil {
		b = config.Default()
	}
	mode, err := b.Mode(opts.Mode)
	if err != nil {
		return nil, err
	}
	doctrine, err := b.Personality(opts.Personality)
	if err != nil {
		return nil, err
	}

	w := &World{
		consts:    b.Constants,
		mode:      mode,
		modeName:  opts.Mode,
		ledger:    economy.NewLedger(b.Constants.StartingResources),
		sink:      opts.Sink,
		renderer:  opts.Renderer,
		objective: model.ObjectiveStatus{Planet: model.NoPlanet},
	}
	if w.sink == nil {
		w.sink = model.NopSink{}
	}
	if w.renderer == nil {
		w.renderer = NopRenderer{}
	}

	for i, ps := range b.Map.Planets {
		p := model.NewPlanet(model.PlanetID(i), ps)
		w.planets = append(w.planets, p)
		if mode.Objective != "" && ps.Name == mode.Objective {
			w.objective.Planet = p.ID()
		}
	}
	w.buildings = building.NewManager(b.Buildings, w.ledger, b.Constants.MaxPerPlanet, b.Constants.RefundRate)
	w.ai, err = rules.NewEngine(model.AI, doctrine, b.Constants.AIParams(), b.Buildings, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("ai engine: %w", err)
	}
	for _, f := range model.Factions {
		w.refreshCaps(f)
	}

	aiInterval := w.ai.Interval()
	if mode.AIInterval > 0 {
		aiInterval = mode.AIInterval
	}
	w.sched = &Scheduler{}
	w.sched.Add(PassPhysics, 0, w.physics)
	w.sched.Add(PassSnapshot, b.Constants.SnapshotInterval, w.snapshot)
	w.sched.Add(PassAI, aiInterval, w.think)
	w.sched.Add(PassEconomy, b.Constants.EconomyInterval, w.economy)

	slog.Info("world created",
		"mode", opts.Mode,
		"personality", doctrine.Name,
		"planets", len(w.planets),
		"ai_interval", aiInterval,
		"seed", opts.Seed,
	)
	return w, nil
}

// Tick advances the game to now, measured from game start. Time never runs
// backwards; an earlier now is treated as no time passing. After victory
// Tick does nothing.
func (w *World) Tick(now time.Duration) {
	if w.result != nil {
		return
	}
	if now > w.now {
		w.now = now
	}
	w.sched.Tick(w.now)
}

// Now is the current game time.
func (w *World) Now() time.Duration { return w.now }

// Result is the victory result, or nil while the game runs.
func (w *World) Result() *victory.Result { return w.result }

// Finished reports whether the game is over.
func (w *World) Finished() bool { return w.result != nil }

// Mode is the active game mode's name.
func (w *World) Mode() string { return w.modeName }

// Scheduler exposes pass statistics.
func (w *World) Scheduler() *Scheduler { return w.sched }

// Ledger exposes balances for read-only callers.
func (w *World) Ledger() *economy.Ledger { return w.ledger }

// Buildings exposes the construction queue for read-only callers.
func (w *World) Buildings() *building.Manager { return w.buildings }

// AI returns the AI engine.
func (w *World) AI() *rules.Engine { return w.ai }

// Planet looks up a planet by id.
func (w *World) Planet(id model.PlanetID) (*model.Planet, bool) {
	if id < 0 || int(id) >= len(w.planets) {
		return nil, false
	}
	return w.planets[id], true
}

// Fleets returns the fleets in flight.
func (w *World) Fleets() []*model.Fleet { return w.fleets }

// State returns a copied world view.
func (w *World) State() model.GameState {
	gs := model.GameState{
		Now:       w.now,
		TimeLimit: w.mode.TimeLimit,
		Planets:   make([]model.PlanetSnapshot, len(w.planets)),
		Fleets:    make([]model.FleetSnapshot, len(w.fleets)),
		Resources: make(map[model.Faction]model.ResourceSnapshot, len(model.Factions)),
		Objective: w.objective,
	}
	for i, p := range w.planets {
		s := p.Snapshot()
		s.Buildings = w.buildings.Snapshot(p.ID())
		gs.Planets[i] = s
	}
	for i, f := range w.fleets {
		gs.Fleets[i] = f.Snapshot()
	}
	for _, f := range model.Factions {
		gs.Resources[f] = w.ledger.Snapshot(f)
	}
	return gs
}

func (w *World) emit(e model.Event) {
	e.At = w.now
	w.sink.Emit(e)
}

func (w *World) refreshCaps(f model.Faction) {
	metal, energy := w.consts.Storage.Caps(f, w.planets)
	w.ledger.SetCaps(f, metal, energy)
}
