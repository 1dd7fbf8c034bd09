package world

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/starfall/starfall-core/building"
	"github.com/nstehr/starfall/starfall-core/model"
)

// LaunchFleet sends ships from origin to dest. It is the single launch path
// for both factions: ownership, ship count and the energy cost are checked
// first, then ships and energy are debited together. A rejected launch
// changes nothing.
func (w *World) LaunchFleet(by model.Faction, origin, dest model.PlanetID, ships int) error {
	o, d, err := w.route(by, origin, dest)
	if err != nil {
		return err
	}
	if ships <= 0 {
		return model.Reject(model.CodeInvalidShipCount, "cannot launch %d ships", ships)
	}
	if float64(ships) > o.Ships() {
		return model.Reject(model.CodeInsufficientShips, "planet %d has %.0f ships, %d requested", origin, o.Ships(), ships)
	}
	cost := float64(w.launchCost(o, d, ships))
	if !w.ledger.CanAffordEnergy(by, cost) {
		w.emit(model.Event{
			Kind:    model.EventResourceInsufficient,
			Faction: by,
			Planet:  origin,
			Detail:  "energy",
		})
		return model.Reject(model.CodeInsufficientResources, "launch needs %.0f energy, have %.0f", cost, w.ledger.Energy(by))
	}

	w.ledger.SpendEnergy(by, cost)
	o.LaunchShips(float64(ships))
	f := model.NewFleet(w.nextFleet, o, d, ships, by, w.now, w.consts.FleetSpeed)
	w.nextFleet++
	w.fleets = append(w.fleets, f)

	w.emit(model.Event{
		Kind:    model.EventFleetLaunched,
		Faction: by,
		Planet:  origin,
		Fleet:   f.ID(),
		Ships:   float64(ships),
		Detail:  d.Name(),
	})
	slog.Debug("fleet launched", "fleet", f.ID(), "faction", by, "origin", origin, "dest", dest, "ships", ships, "energy", cost, "eta", f.ArrivesAt())
	return nil
}

// Resources is f's current balances and caps.
func (w *World) Resources(f model.Faction) model.ResourceSnapshot {
	return w.ledger.Snapshot(f)
}

// LaunchCost previews the energy a launch would cost.
func (w *World) LaunchCost(origin, dest model.PlanetID, ships int) (int, error) {
	o, ok := w.Planet(origin)
	if !ok {
		return 0, model.Reject(model.CodeUnknownPlanet, "unknown planet %d", origin)
	}
	d, ok := w.Planet(dest)
	if !ok {
		return 0, model.Reject(model.CodeUnknownPlanet, "unknown planet %d", dest)
	}
	return w.launchCost(o, d, ships), nil
}

func (w *World) launchCost(o, d *model.Planet, ships int) int {
	dist := model.Distance(o.Position(), d.Position())
	return model.MovementCost(ships, dist, w.consts.BaseCost, w.consts.DistanceCost)
}

func (w *World) route(by model.Faction, origin, dest model.PlanetID) (*model.Planet, *model.Planet, error) {
	if err := w.commandable(by); err != nil {
		return nil, nil, err
	}
	o, ok := w.Planet(origin)
	if !ok {
		return nil, nil, model.Reject(model.CodeUnknownPlanet, "unknown planet %d", origin)
	}
	d, ok := w.Planet(dest)
	if !ok {
		return nil, nil, model.Reject(model.CodeUnknownPlanet, "unknown planet %d", dest)
	}
	if origin == dest {
		return nil, nil, model.Reject(model.CodeSamePlanet, "origin and destination are both %d", origin)
	}
	if !o.OwnedBy(by) {
		return nil, nil, model.Reject(model.CodeNotOwner, "planet %d is not owned by %s", origin, by)
	}
	return o, d, nil
}

func (w *World) commandable(by model.Faction) error {
	if w.result != nil {
		return model.Reject(model.CodeGameOver, "game is over")
	}
	if !by.Playing() {
		return model.Reject(model.CodeInvalidFaction, "%s cannot issue commands", by)
	}
	return nil
}

// StartConstruction queues a building on planet, paying its cost now.
func (w *World) StartConstruction(by model.Faction, planet model.PlanetID, id building.ID) error {
	if err := w.commandable(by); err != nil {
		return err
	}
	p, ok := w.Planet(planet)
	if !ok {
		return model.Reject(model.CodeUnknownPlanet, "unknown planet %d", planet)
	}
	if err := w.buildings.StartConstruction(p, by, id, w.now); err != nil {
		if model.IsRejection(err, model.CodeInsufficientResources) {
			w.emit(model.Event{
				Kind:     model.EventResourceInsufficient,
				Faction:  by,
				Planet:   planet,
				Building: string(id),
			})
		}
		return err
	}
	w.emit(model.Event{
		Kind:     model.EventConstructionStarted,
		Faction:  by,
		Planet:   planet,
		Building: string(id),
	})
	return nil
}

// CancelConstruction drops an unfinished building and refunds part of its
// cost.
func (w *World) CancelConstruction(by model.Faction, planet model.PlanetID, id building.ID) error {
	if err := w.commandable(by); err != nil {
		return err
	}
	p, ok := w.Planet(planet)
	if !ok {
		return model.Reject(model.CodeUnknownPlanet, "unknown planet %d", planet)
	}
	refund, err := w.buildings.CancelConstruction(p, by, id)
	if err != nil {
		return err
	}
	w.emit(model.Event{
		Kind:     model.EventConstructionCancelled,
		Faction:  by,
		Planet:   planet,
		Building: string(id),
		Detail:   fmt.Sprintf("refunded %.0f metal %.0f energy", refund.Metal, refund.Energy),
	})
	return nil
}
