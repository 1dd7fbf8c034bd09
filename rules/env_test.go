package rules

import (
	"testing"
	"time"

	"github.com/nstehr/starfall/starfall-core/model"
)

// galaxy lays planets out along the x axis, 100 apart.
func galaxy(planets ...model.PlanetSnapshot) model.GameState {
	gs := model.GameState{Objective: model.ObjectiveStatus{Planet: model.NoPlanet}}
	for i, p := range planets {
		p.ID = model.PlanetID(i)
		if p.Position == (model.Vec2{}) && i > 0 {
			p.Position = model.Vec2{X: float64(i) * 100}
		}
		if p.Capacity == 0 {
			p.Capacity = 30
		}
		gs.Planets = append(gs.Planets, p)
	}
	return gs
}

func owned(f model.Faction, ships float64) model.PlanetSnapshot {
	return model.PlanetSnapshot{Owner: f, Ships: ships}
}

func neutral() model.PlanetSnapshot { return model.PlanetSnapshot{Owner: model.Neutral} }

func TestSignals(t *testing.T) {
	gs := galaxy(owned(model.AI, 20), owned(model.Player, 10), neutral(), neutral())
	gs.Fleets = []model.FleetSnapshot{{Owner: model.Player, Destination: 0, ShipCount: 25}}
	env := RuleEnv{State: gs, Faction: model.AI}

	if got := env.TerritoryRatio(); got != 0.25 {
		t.Errorf("TerritoryRatio() = %v, want 0.25", got)
	}
	// player: 10 on planet + 25 in flight
	if got := env.ShipRatio(); got != 20.0/35.0 {
		t.Errorf("ShipRatio() = %v, want %v", got, 20.0/35.0)
	}
	if got := env.ThreatenedPlanets(); got != 1 {
		t.Errorf("ThreatenedPlanets() = %d, want 1", got)
	}
	if got := env.NeutralCount(); got != 2 {
		t.Errorf("NeutralCount() = %d, want 2", got)
	}
	if got := env.TimeRemainingRatio(); got != 1 {
		t.Errorf("TimeRemainingRatio() untimed = %v, want 1", got)
	}
	if env.HasObjective() || env.ControlsObjective() {
		t.Error("objective signals set without an objective planet")
	}
}

func TestTimeAndObjectiveSignals(t *testing.T) {
	gs := galaxy(owned(model.AI, 5), neutral())
	gs.TimeLimit = 100 * time.Second
	gs.Now = 75 * time.Second
	gs.Objective.Planet = 0
	env := RuleEnv{State: gs, Faction: model.AI}

	if got := env.TimeRemainingRatio(); got != 0.25 {
		t.Errorf("TimeRemainingRatio() = %v, want 0.25", got)
	}
	if !env.ControlsObjective() {
		t.Error("ControlsObjective() = false, want true")
	}
	if (RuleEnv{State: gs, Faction: model.Player}).ControlsObjective() {
		t.Error("player ControlsObjective() = true, want false")
	}
}

func TestShipRatioWithoutEnemyShips(t *testing.T) {
	env := RuleEnv{State: galaxy(owned(model.AI, 12), owned(model.Player, 0)), Faction: model.AI}
	if got := env.ShipRatio(); got != 12 {
		t.Errorf("ShipRatio() = %v, want 12", got)
	}
}
