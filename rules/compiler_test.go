package rules

import (
	"strings"
	"testing"

	"github.com/nstehr/starfall/starfall-core/model"
)

func TestCompiledRulesCompile(t *testing.T) {
	for _, d := range []Doctrine{
		DefaultDoctrine(),
		{Name: "zealot", Aggression: 1, Expansion: 0, Defense: 0, RiskTaking: 1},
		{Name: "turtle", Aggression: 0, Expansion: 0.2, Defense: 1, RiskTaking: 0},
	} {
		engine, err := NewEngine(model.AI, d, Params{}, nil, 1)
		if err != nil {
			t.Fatalf("NewEngine(%s) failed: %v", d.Name, err)
		}
		if len(engine.rules) != 6 {
			t.Errorf("%s: expected 6 rules, got %d", d.Name, len(engine.rules))
		}
		for i := 1; i < len(engine.rules); i++ {
			if engine.rules[i].Priority > engine.rules[i-1].Priority {
				t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
					engine.rules[i].Name, engine.rules[i].Priority,
					engine.rules[i-1].Name, engine.rules[i-1].Priority)
			}
		}
		if last := engine.rules[len(engine.rules)-1]; last.Strategy != StrategyBalanced {
			t.Errorf("%s: last rule = %s, want balanced fallback", d.Name, last.Name)
		}
	}
}

func TestAggressionLowersAttackThreshold(t *testing.T) {
	find := func(d Doctrine) string {
		for _, r := range CompileDoctrine(d) {
			if r.Strategy == StrategyAttack {
				return r.ConditionSrc
			}
		}
		return ""
	}
	if got := find(Doctrine{Aggression: 1}); !strings.Contains(got, "ShipRatio() >= 0.90") {
		t.Errorf("aggressive attack rule = %q, want threshold 0.90", got)
	}
	if got := find(Doctrine{Aggression: 0}); !strings.Contains(got, "ShipRatio() >= 1.60") {
		t.Errorf("passive attack rule = %q, want threshold 1.60", got)
	}
}

func TestEveryStrategyHasWeights(t *testing.T) {
	strategies := Strategies(DefaultDoctrine())
	for _, r := range CompileDoctrine(DefaultDoctrine()) {
		s, ok := strategies[r.Strategy]
		if !ok {
			t.Errorf("rule %s selects unknown strategy %q", r.Name, r.Strategy)
			continue
		}
		if s.CommitShare <= 0 || s.CommitShare > 1 {
			t.Errorf("strategy %s CommitShare = %v, want (0, 1]", s.Name, s.CommitShare)
		}
	}
}

