package victory

import (
	"testing"
	"time"

	"github.com/nstehr/starfall/starfall-core/model"
)

func state(owners ...model.Faction) model.GameState {
	gs := model.GameState{Objective: model.ObjectiveStatus{Planet: model.NoPlanet}}
	for i, o := range owners {
		gs.Planets = append(gs.Planets, model.PlanetSnapshot{ID: model.PlanetID(i), Owner: o, Ships: 10, Capacity: 20})
	}
	return gs
}

func TestTotalConquest(t *testing.T) {
	rules := Rules{Conditions: []Condition{TotalConquest}}

	if res := Evaluate(state(model.Player, model.Player, model.AI), rules); res != nil {
		t.Fatalf("Evaluate with ai planet left = %+v, want nil", res)
	}
	res := Evaluate(state(model.Player, model.Player, model.Player), rules)
	if res == nil || res.Winner != model.Player || res.Condition != TotalConquest {
		t.Fatalf("Evaluate = %+v, want player by total_conquest", res)
	}

	// A neutral planet still standing blocks total conquest.
	if res := Evaluate(state(model.Player, model.Neutral), rules); res != nil {
		t.Errorf("Evaluate with neutral planet = %+v, want nil", res)
	}
}

func TestConquestInProgressDoesNotCount(t *testing.T) {
	gs := state(model.Player, model.Player)
	gs.Planets[1].BeingConquered = true
	if res := Evaluate(gs, Rules{Conditions: []Condition{TotalConquest}}); res != nil {
		t.Errorf("Evaluate = %+v, want nil", res)
	}
}

func TestDomination(t *testing.T) {
	rules := Rules{Conditions: []Condition{Domination}, DominationPercent: 75}
	tests := []struct {
		name   string
		owners []model.Faction
		want   model.Faction
	}{
		{"below threshold", []model.Faction{model.AI, model.AI, model.Player, model.Neutral}, model.Neutral},
		{"ai at threshold", []model.Faction{model.AI, model.AI, model.AI, model.Player}, model.AI},
		{"player above", []model.Faction{model.Player, model.Player, model.Player, model.Player, model.AI}, model.Player},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(state(tt.owners...), rules)
			got := model.Neutral
			if res != nil {
				got = res.Winner
			}
			if got != tt.want {
				t.Errorf("winner = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEconomicNeedsMorePlanets(t *testing.T) {
	rules := Rules{Conditions: []Condition{Economic}, EconomicShipRatio: 2}
	gs := state(model.Player, model.AI)
	gs.Planets[0].Ships = 30
	gs.Planets[1].Ships = 5
	if res := Evaluate(gs, rules); res != nil {
		t.Fatalf("Evaluate with equal planets = %+v, want nil", res)
	}

	gs = state(model.Player, model.Player, model.AI)
	gs.Planets[2].Ships = 9
	gs.Fleets = []model.FleetSnapshot{{Owner: model.AI, ShipCount: 1}}
	res := Evaluate(gs, rules)
	if res == nil || res.Winner != model.Player {
		t.Fatalf("Evaluate = %+v, want player", res)
	}
}

func TestTimed(t *testing.T) {
	rules := Rules{Conditions: []Condition{Timed}}
	gs := state(model.Player, model.AI)
	gs.TimeLimit = time.Minute
	gs.Now = 59 * time.Second
	if res := Evaluate(gs, rules); res != nil {
		t.Fatalf("Evaluate before time up = %+v, want nil", res)
	}

	gs.Now = time.Minute
	res := Evaluate(gs, rules)
	if res == nil || !res.Draw {
		t.Fatalf("Evaluate on tie = %+v, want draw", res)
	}

	gs.Planets = append(gs.Planets, model.PlanetSnapshot{ID: 2, Owner: model.AI})
	res = Evaluate(gs, rules)
	if res == nil || res.Draw || res.Winner != model.AI {
		t.Errorf("Evaluate = %+v, want ai win", res)
	}
}

func TestObjectiveHold(t *testing.T) {
	rules := Rules{Conditions: []Condition{Objective}, ObjectiveHold: 30 * time.Second}
	gs := state(model.Player, model.AI)
	gs.Objective = model.ObjectiveStatus{Planet: 1, Holder: model.AI, Held: 29 * time.Second}
	if res := Evaluate(gs, rules); res != nil {
		t.Fatalf("Evaluate = %+v, want nil", res)
	}
	gs.Objective.Held = 30 * time.Second
	if res := Evaluate(gs, rules); res == nil || res.Winner != model.AI {
		t.Errorf("Evaluate = %+v, want ai", res)
	}
}

func TestOrderIsPolicy(t *testing.T) {
	gs := state(model.Player, model.Player, model.Player)
	gs.TimeLimit = time.Second
	gs.Now = time.Second

	res := Evaluate(gs, Rules{Conditions: []Condition{Timed, TotalConquest}})
	if res == nil || res.Condition != Timed {
		t.Errorf("condition = %+v, want timed", res)
	}
	res = Evaluate(gs, Rules{Conditions: []Condition{TotalConquest, Timed}})
	if res == nil || res.Condition != TotalConquest {
		t.Errorf("condition = %+v, want total_conquest", res)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rules   Rules
		wantErr bool
	}{
		{"ok", Rules{Conditions: []Condition{TotalConquest, Domination}, DominationPercent: 70}, false},
		{"empty", Rules{}, true},
		{"unknown", Rules{Conditions: []Condition{"diplomacy"}}, true},
		{"domination without percent", Rules{Conditions: []Condition{Domination}}, true},
		{"objective without hold", Rules{Conditions: []Condition{Objective}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rules.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
