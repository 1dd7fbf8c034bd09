package rules

import "github.com/expr-lang/expr/vm"

// Rule maps a condition over world signals to a strategy. The engine
// evaluates rules by priority and the first match picks the cycle's
// strategy.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Strategy     string      // strategy selected when the condition holds
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
}
