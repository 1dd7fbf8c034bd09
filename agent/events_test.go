package agent

import (
	"strings"
	"testing"
	"time"

	"github.com/nstehr/starfall/starfall-core/model"
)

func TestAnnounce(t *testing.T) {
	names := planetNames{"Terra", "Kharon", "Vesta"}
	tests := []struct {
		name  string
		event model.Event
		want  string
	}{
		{"claim", model.Event{Kind: model.EventPlanetConquered, Faction: model.Player, Planet: 2}, "player claimed Vesta"},
		{"capture", model.Event{Kind: model.EventPlanetConquered, Faction: model.AI, Planet: 0, Previous: model.Player}, "ai took Terra from player"},
		{"arrival", model.Event{Kind: model.EventFleetArrived, Faction: model.AI, Planet: 2, Ships: 7, Outcome: "defended"}, "ai fleet of 7 reached Vesta (defended)"},
		{"build", model.Event{Kind: model.EventBuildingCompleted, Faction: model.Player, Planet: 0, Building: "mine"}, "player finished mine on Terra"},
		{"energy", model.Event{Kind: model.EventResourceInsufficient, Faction: model.Player, Planet: 0, Detail: "energy"}, "player lacks energy at Terra"},
		{"unknown planet", model.Event{Kind: model.EventConstructionStarted, Faction: model.AI, Planet: 9, Building: "depot"}, "ai began building depot on planet 9"},
		{"victory", model.Event{Kind: model.EventVictoryReached, Faction: model.Player, Condition: "domination", Detail: "player controls 80% of planets"}, "player wins by domination: player controls 80% of planets"},
		{"draw", model.Event{Kind: model.EventVictoryReached, Condition: "timed", Detail: "time up, tied at 3 planets"}, "draw by timed: time up, tied at 3 planets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := announce(tt.event, names); got != tt.want {
				t.Errorf("announce() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	gs := model.GameState{
		Now:       90 * time.Second,
		TimeLimit: 5 * time.Minute,
		Planets: []model.PlanetSnapshot{
			{ID: 0, Owner: model.Player, Ships: 12},
			{ID: 1, Owner: model.AI, Ships: 8},
			{ID: 2, Owner: model.AI, Ships: 3},
		},
		Resources: map[model.Faction]model.ResourceSnapshot{
			model.Player: {Metal: 120, Energy: 40},
		},
	}
	got := summarize(gs)
	for _, want := range []string{"t=1m30s", "player: 1 planets 12 ships 120m/40e", "ai: 2 planets 11 ships", "3m30s left"} {
		if !strings.Contains(got, want) {
			t.Errorf("summarize() = %q, missing %q", got, want)
		}
	}
}
