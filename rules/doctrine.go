package rules

import (
	"math"
	"time"
)

// Doctrine is an AI personality. Weights are 0.0–1.0; the compiler maps
// them to strategy thresholds and the engine to fleet sizing.
type Doctrine struct {
	Name       string  `yaml:"name" json:"name"`
	Aggression float64 `yaml:"aggression" json:"aggression"`
	Expansion  float64 `yaml:"expansion" json:"expansion"`
	Defense    float64 `yaml:"defense" json:"defense"`
	RiskTaking float64 `yaml:"risk_taking" json:"risk_taking"`
	// Interval between decision cycles. Zero derives it from Aggression.
	Interval time.Duration `yaml:"interval" json:"interval"`
}

const (
	minInterval = 500 * time.Millisecond
	maxInterval = 3000 * time.Millisecond
)

// DefaultDoctrine returns a balanced baseline personality.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:       "balanced",
		Aggression: 0.5,
		Expansion:  0.5,
		Defense:    0.5,
		RiskTaking: 0.5,
	}
}

// Validate clamps all weights to their valid ranges.
func (d *Doctrine) Validate() {
	d.Aggression = clamp(d.Aggression, 0, 1)
	d.Expansion = clamp(d.Expansion, 0, 1)
	d.Defense = clamp(d.Defense, 0, 1)
	d.RiskTaking = clamp(d.RiskTaking, 0, 1)
	if d.Interval != 0 {
		d.Interval = time.Duration(clampInt(int(d.Interval), int(minInterval), int(maxInterval)))
	}
}

// DecisionInterval is the time between AI decision cycles. Aggressive
// personalities think faster.
func (d Doctrine) DecisionInterval() time.Duration {
	if d.Interval > 0 {
		return time.Duration(clampInt(int(d.Interval), int(minInterval), int(maxInterval)))
	}
	ms := lerp(int(maxInterval/time.Millisecond), int(minInterval/time.Millisecond), clamp(d.Aggression, 0, 1))
	return time.Duration(ms) * time.Millisecond
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// lerp linearly interpolates between min and max by t (0–1), returning an int.
func lerp(min, max int, t float64) int {
	return min + int(math.Round(float64(max-min)*t))
}

// lerpf linearly interpolates between min and max by t (0–1), returning a float64.
func lerpf(min, max, t float64) float64 {
	return min + (max-min)*t
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
