package rules

import (
	"testing"

	"github.com/nstehr/starfall/starfall-core/building"
	"github.com/nstehr/starfall/starfall-core/economy"
	"github.com/nstehr/starfall/starfall-core/model"
)

func TestPlanLaunch(t *testing.T) {
	e := newTestEngine(t, DefaultDoctrine(), nil, 1)
	strategies := Strategies(DefaultDoctrine())

	tests := []struct {
		name     string
		state    func() model.GameState
		strategy string
		want     *Launch // Score ignored
	}{
		{
			name: "nearest neutral gets minimum plus buffer",
			state: func() model.GameState {
				return galaxy(owned(model.AI, 20), neutral(), neutral())
			},
			strategy: StrategyExpand,
			want:     &Launch{Origin: 0, Target: 1, Kind: TargetNeutral, Ships: 4},
		},
		{
			name: "enemy gets share of origin",
			state: func() model.GameState {
				return galaxy(owned(model.AI, 30), model.PlanetSnapshot{Owner: model.Player, Ships: 10, Capacity: 20})
			},
			strategy: StrategyAttack,
			want:     &Launch{Origin: 0, Target: 1, Kind: TargetEnemy, Ships: 18},
		},
		{
			name: "threatened friendly is filled",
			state: func() model.GameState {
				gs := galaxy(owned(model.AI, 20), owned(model.AI, 2), owned(model.Player, 50))
				gs.Fleets = []model.FleetSnapshot{{Owner: model.Player, Destination: 1, ShipCount: 10}}
				return gs
			},
			strategy: StrategyDefend,
			want:     &Launch{Origin: 0, Target: 1, Kind: TargetFriendly, Ships: 20},
		},
		{
			name: "enemy already covered by inbound ships",
			state: func() model.GameState {
				gs := galaxy(owned(model.AI, 30), model.PlanetSnapshot{Owner: model.Player, Ships: 10, Capacity: 20})
				gs.Fleets = []model.FleetSnapshot{{Owner: model.AI, Destination: 1, ShipCount: 11}}
				return gs
			},
			strategy: StrategyAttack,
			want:     nil,
		},
		{
			name: "hopeless attack is no action",
			state: func() model.GameState {
				return galaxy(owned(model.AI, 8), owned(model.Player, 20))
			},
			strategy: StrategyAttack,
			want:     nil,
		},
		{
			name: "garrison at minimum force is not actionable",
			state: func() model.GameState {
				return galaxy(owned(model.AI, 5), neutral())
			},
			strategy: StrategyExpand,
			want:     nil,
		},
		{
			name: "own conquest in progress is skipped",
			state: func() model.GameState {
				return galaxy(owned(model.AI, 20),
					model.PlanetSnapshot{Owner: model.Neutral, BeingConquered: true, Conqueror: model.AI, Ships: 3})
			},
			strategy: StrategyExpand,
			want:     nil,
		},
		{
			name: "enough ships already inbound",
			state: func() model.GameState {
				gs := galaxy(owned(model.AI, 20), neutral())
				gs.Fleets = []model.FleetSnapshot{{Owner: model.AI, Destination: 1, ShipCount: 4}}
				return gs
			},
			strategy: StrategyExpand,
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := RuleEnv{State: tt.state(), Faction: model.AI}
			got := e.PlanLaunch(env, strategies[tt.strategy])
			if tt.want == nil {
				if got != nil {
					t.Errorf("PlanLaunch = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("PlanLaunch = nil, want a launch")
			}
			got.Score = 0
			if *got != *tt.want {
				t.Errorf("PlanLaunch = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestObjectiveBonus(t *testing.T) {
	e := newTestEngine(t, DefaultDoctrine(), nil, 1)
	gs := galaxy(
		owned(model.AI, 20),
		model.PlanetSnapshot{Owner: model.Neutral, Position: model.Vec2{X: 100}},
		model.PlanetSnapshot{Owner: model.Neutral, Position: model.Vec2{Y: 100}},
	)
	env := RuleEnv{State: gs, Faction: model.AI}
	strategies := Strategies(DefaultDoctrine())

	if got := e.PlanLaunch(env, strategies[StrategyObjective]); got == nil || got.Target != 1 {
		t.Fatalf("without objective target = %+v, want 1", got)
	}
	env.State.Objective.Planet = 2
	if got := e.PlanLaunch(env, strategies[StrategyObjective]); got == nil || got.Target != 2 {
		t.Errorf("with objective target = %+v, want 2", got)
	}
}

func TestLaunchNeverExceedsOrigin(t *testing.T) {
	e := newTestEngine(t, Doctrine{Aggression: 1, RiskTaking: 0}, nil, 1)
	strategies := Strategies(e.Doctrine())
	gs := galaxy(owned(model.AI, 13), model.PlanetSnapshot{Owner: model.Player, Ships: 11, Capacity: 40})
	l := e.PlanLaunch(RuleEnv{State: gs, Faction: model.AI}, strategies[StrategyAttack])
	if l == nil {
		t.Fatal("PlanLaunch = nil, want a launch")
	}
	if l.Ships > 13 {
		t.Errorf("Ships = %d, want at most 13", l.Ships)
	}
}

var buildCatalog = []building.Definition{
	{ID: "mine", Cost: economy.Cost{Metal: 10}, Priority: 2, Effect: model.Effect{Type: model.EffectMetalRate, Magnitude: 0.5}},
	{ID: "reactor", Cost: economy.Cost{Metal: 10}, Priority: 1, Effect: model.Effect{Type: model.EffectEnergyRate, Magnitude: 0.5}},
	{ID: "shipyard", Cost: economy.Cost{Metal: 10}, Priority: 1.5, Effect: model.Effect{Type: model.EffectProductionRate, Magnitude: 0.5}},
}

func TestPlanBuildPrefersScarceResource(t *testing.T) {
	gs := galaxy(owned(model.AI, 10))
	gs.Resources = map[model.Faction]model.ResourceSnapshot{model.AI: {Metal: 50, Energy: 500}}

	picked := map[building.ID]int{}
	for seed := int64(0); seed < 200; seed++ {
		e := newTestEngine(t, DefaultDoctrine(), buildCatalog, seed)
		b := e.PlanBuild(RuleEnv{State: gs, Faction: model.AI})
		if b == nil {
			t.Fatalf("seed %d: PlanBuild = nil", seed)
		}
		picked[b.Building]++
	}
	// mine scores 4 (boosted), shipyard 1.5, reactor 1.
	if picked["reactor"] != 0 {
		t.Errorf("reactor picked %d times, want 0 (not in top two)", picked["reactor"])
	}
	if picked["mine"] == 0 || picked["shipyard"] == 0 {
		t.Errorf("picks = %v, want both mine and shipyard", picked)
	}
	if picked["mine"] <= picked["shipyard"] {
		t.Errorf("picks = %v, want mine favoured", picked)
	}
}

func TestPlanBuildSkips(t *testing.T) {
	tests := []struct {
		name  string
		state func() model.GameState
	}{
		{"no slots", func() model.GameState {
			p := owned(model.AI, 10)
			p.Buildings = []model.BuildingSnapshot{{ID: "a"}, {ID: "b"}, {ID: "c"}}
			gs := galaxy(p)
			gs.Resources = map[model.Faction]model.ResourceSnapshot{model.AI: {Metal: 500, Energy: 500}}
			return gs
		}},
		{"broke", func() model.GameState {
			gs := galaxy(owned(model.AI, 10))
			gs.Resources = map[model.Faction]model.ResourceSnapshot{model.AI: {Metal: 9, Energy: 500}}
			return gs
		}},
		{"already built", func() model.GameState {
			p := owned(model.AI, 10)
			p.Buildings = []model.BuildingSnapshot{{ID: "mine"}, {ID: "reactor"}, {ID: "shipyard"}}
			gs := galaxy(p)
			gs.Resources = map[model.Faction]model.ResourceSnapshot{model.AI: {Metal: 500, Energy: 500}}
			return gs
		}},
		{"not owned", func() model.GameState {
			gs := galaxy(owned(model.Player, 10))
			gs.Resources = map[model.Faction]model.ResourceSnapshot{model.AI: {Metal: 500, Energy: 500}}
			return gs
		}},
	}
	e := newTestEngine(t, DefaultDoctrine(), buildCatalog, 1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if b := e.PlanBuild(RuleEnv{State: tt.state(), Faction: model.AI}); b != nil {
				t.Errorf("PlanBuild = %+v, want nil", b)
			}
		})
	}
}
