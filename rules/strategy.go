package rules

// Strategy names.
const (
	StrategyObjective = "objective"
	StrategyDesperate = "desperate"
	StrategyDefend    = "defend"
	StrategyAttack    = "attack"
	StrategyExpand    = "expand"
	StrategyBalanced  = "balanced"
)

// Strategy weights one decision cycle's target scoring.
type Strategy struct {
	Name      string
	Expansion float64 // neutral targets
	Attack    float64 // enemy targets
	Reinforce float64 // threatened friendly targets
	Objective float64 // extra multiplier on the objective planet
	// CommitShare is the fraction of an origin's ships sent at an enemy.
	CommitShare float64
}

// Strategies derives the strategy table from a personality.
func Strategies(d Doctrine) map[string]Strategy {
	d.Validate()
	return map[string]Strategy{
		StrategyObjective: {
			Name: StrategyObjective, Expansion: 0.3, Attack: 0.8, Reinforce: 0.6, Objective: 3,
			CommitShare: lerpf(0.5, 0.8, d.RiskTaking),
		},
		StrategyDesperate: {
			Name: StrategyDesperate, Expansion: 0.6, Attack: 1.6, Reinforce: 0.2, Objective: 1,
			CommitShare: lerpf(0.6, 0.9, d.RiskTaking),
		},
		StrategyDefend: {
			Name: StrategyDefend, Expansion: 0.3, Attack: 0.3, Reinforce: lerpf(1.5, 2.5, d.Defense),
			CommitShare: 0.4,
		},
		StrategyAttack: {
			Name: StrategyAttack, Expansion: 0.5, Attack: lerpf(1.2, 2, d.Aggression), Reinforce: 0.5, Objective: 0.5,
			CommitShare: lerpf(0.4, 0.8, d.Aggression),
		},
		StrategyExpand: {
			Name: StrategyExpand, Expansion: lerpf(1.2, 2, d.Expansion), Attack: 0.4, Reinforce: 0.5,
			CommitShare: 0.5,
		},
		StrategyBalanced: {
			Name:        StrategyBalanced,
			Expansion:   0.5 + d.Expansion,
			Attack:      0.5 + d.Aggression,
			Reinforce:   0.5 + d.Defense,
			Objective:   0.5,
			CommitShare: lerpf(0.4, 0.7, d.Aggression),
		},
	}
}
