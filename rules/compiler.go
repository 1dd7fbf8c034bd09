package rules

import "fmt"

// CompileDoctrine generates the strategy-selection rules for a personality.
// All conditions are built via fmt.Sprintf with interpolated values, so the
// compiler never generates invalid expr.
func CompileDoctrine(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	// Go for the objective once strong enough; risk takers go earlier.
	objectiveRatio := lerpf(1.2, 0.6, d.RiskTaking)
	rules = append(rules, &Rule{
		Name:         "contest-objective",
		Priority:     900,
		Strategy:     StrategyObjective,
		ConditionSrc: fmt.Sprintf(`HasObjective() && !ControlsObjective() && ShipRatio() >= %.2f`, objectiveRatio),
	})

	desperateTerritory := lerpf(0.2, 0.35, d.RiskTaking)
	desperateTime := lerpf(0.2, 0.4, d.Aggression)
	rules = append(rules, &Rule{
		Name:         "last-stand",
		Priority:     800,
		Strategy:     StrategyDesperate,
		ConditionSrc: fmt.Sprintf(`TerritoryRatio() < %.2f && TimeRemainingRatio() < %.2f`, desperateTerritory, desperateTime),
	})

	threatened := lerp(3, 1, d.Defense)
	rules = append(rules, &Rule{
		Name:         "defend-threatened",
		Priority:     700,
		Strategy:     StrategyDefend,
		ConditionSrc: fmt.Sprintf(`ThreatenedPlanets() >= %d`, threatened),
	})

	attackRatio := lerpf(1.6, 0.9, d.Aggression)
	rules = append(rules, &Rule{
		Name:         "press-advantage",
		Priority:     600,
		Strategy:     StrategyAttack,
		ConditionSrc: fmt.Sprintf(`EnemyPlanets() > 0 && ShipRatio() >= %.2f`, attackRatio),
	})

	expandTerritory := lerpf(0.3, 0.7, d.Expansion)
	rules = append(rules, &Rule{
		Name:         "grab-neutrals",
		Priority:     500,
		Strategy:     StrategyExpand,
		ConditionSrc: fmt.Sprintf(`NeutralCount() > 0 && TerritoryRatio() < %.2f`, expandTerritory),
	})

	rules = append(rules, &Rule{
		Name:         "fallback",
		Priority:     0,
		Strategy:     StrategyBalanced,
		ConditionSrc: `true`,
	})

	return rules
}
