// Package config loads game balance from YAML and process settings from
// the environment.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nstehr/starfall/starfall-core/building"
	"github.com/nstehr/starfall/starfall-core/economy"
	"github.com/nstehr/starfall/starfall-core/model"
	"github.com/nstehr/starfall/starfall-core/rules"
	"github.com/nstehr/starfall/starfall-core/victory"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultBalance []byte

// Balance is the full tuning table for a game.
type Balance struct {
	Constants     Constants                 `yaml:"constants"`
	Buildings     []building.Definition     `yaml:"buildings"`
	Modes         map[string]Mode           `yaml:"modes"`
	Personalities map[string]rules.Doctrine `yaml:"personalities"`
	Map           Map                       `yaml:"map"`
}

// Constants are the numeric rules shared by every mode.
type Constants struct {
	ConquestTime      time.Duration   `yaml:"conquest_time"`
	FleetSpeed        float64         `yaml:"fleet_speed"` // units per second
	BaseCost          float64         `yaml:"base_cost"`
	DistanceCost      float64         `yaml:"distance_cost"`
	MinAttackForce    float64         `yaml:"min_attack_force"`
	AIBuffer          int             `yaml:"ai_buffer"`
	RefundRate        float64         `yaml:"refund_rate"`
	MaxPerPlanet      int             `yaml:"max_per_planet"`
	ScarceBelow       float64         `yaml:"scarce_below"`
	ScarcityBoost     float64         `yaml:"scarcity_boost"`
	StartingResources economy.Cost    `yaml:"starting_resources"`
	Storage           economy.Storage `yaml:"storage"`
	SnapshotInterval  time.Duration   `yaml:"snapshot_interval"`
	EconomyInterval   time.Duration   `yaml:"economy_interval"`
}

// Mode is one way to play: its victory rules and balance tweaks.
type Mode struct {
	Victory   victory.Rules `yaml:"victory"`
	TimeLimit time.Duration `yaml:"time_limit"`
	// AIInterval overrides the personality's decision cadence when set.
	AIInterval      time.Duration `yaml:"ai_interval"`
	ProductionBonus Bonus         `yaml:"production_bonus"`
	// Objective names the planet to hold for objective victories.
	Objective string `yaml:"objective"`
}

// Bonus is a per-faction production multiplier. Zero means 1.
type Bonus struct {
	Player float64 `yaml:"player"`
	AI     float64 `yaml:"ai"`
}

// For returns f's multiplier.
func (b Bonus) For(f model.Faction) float64 {
	v := 0.0
	switch f {
	case model.Player:
		v = b.Player
	case model.AI:
		v = b.AI
	}
	if v <= 0 {
		return 1
	}
	return v
}

// Map is the starting layout.
type Map struct {
	Planets []model.PlanetSpec `yaml:"planets"`
}

// Default returns the embedded balance.
func Default() *Balance {
	b, err := Parse(defaultBalance)
	if err != nil {
		panic(fmt.Sprintf("embedded balance: %v", err))
	}
	return b
}

// Load reads a balance file, or the embedded default when path is empty.
func Load(path string) (*Balance, error) {
	if path == "" {
		return Parse(defaultBalance)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML balance document.
func Parse(data []byte) (*Balance, error) {
	var b Balance
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unmarshal balance: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("validate balance: %w", err)
	}
	return &b, nil
}

// Validate reports every inconsistency it finds.
func (b *Balance) Validate() error {
	var errs []error
	c := b.Constants
	if c.FleetSpeed <= 0 {
		errs = append(errs, errors.New("fleet_speed must be positive"))
	}
	if c.BaseCost < 0 || c.DistanceCost < 0 {
		errs = append(errs, errors.New("movement costs must not be negative"))
	}
	if c.RefundRate < 0 || c.RefundRate > 1 {
		errs = append(errs, fmt.Errorf("refund_rate %.2f outside [0, 1]", c.RefundRate))
	}
	if c.MaxPerPlanet <= 0 {
		errs = append(errs, errors.New("max_per_planet must be positive"))
	}
	if c.SnapshotInterval <= 0 || c.EconomyInterval <= 0 {
		errs = append(errs, errors.New("snapshot and economy intervals must be positive"))
	}

	seen := make(map[building.ID]bool)
	for _, d := range b.Buildings {
		if d.ID == "" {
			errs = append(errs, errors.New("building without id"))
			continue
		}
		if seen[d.ID] {
			errs = append(errs, fmt.Errorf("duplicate building %q", d.ID))
		}
		seen[d.ID] = true
	}

	names := make(map[string]bool)
	owners := make(map[model.Faction]bool)
	for i, p := range b.Map.Planets {
		if p.Capacity <= 0 {
			errs = append(errs, fmt.Errorf("planet %d (%s): capacity must be positive", i, p.Name))
		}
		if p.Ships < 0 || p.Ships > p.Capacity {
			errs = append(errs, fmt.Errorf("planet %d (%s): ships %.0f outside [0, capacity]", i, p.Name, p.Ships))
		}
		if p.Name != "" {
			if names[p.Name] {
				errs = append(errs, fmt.Errorf("duplicate planet name %q", p.Name))
			}
			names[p.Name] = true
		}
		owners[p.Owner] = true
	}
	for _, f := range model.Factions {
		if !owners[f] {
			errs = append(errs, fmt.Errorf("map has no starting planet for %s", f))
		}
	}

	if len(b.Modes) == 0 {
		errs = append(errs, errors.New("no game modes"))
	}
	for name, m := range b.Modes {
		if err := m.Victory.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("mode %s: %w", name, err))
		}
		if m.AIInterval != 0 && (m.AIInterval < 500*time.Millisecond || m.AIInterval > 3*time.Second) {
			errs = append(errs, fmt.Errorf("mode %s: ai_interval %v outside [500ms, 3s]", name, m.AIInterval))
		}
		if m.Victory.Has(victory.Timed) && m.TimeLimit <= 0 {
			errs = append(errs, fmt.Errorf("mode %s: timed victory needs time_limit", name))
		}
		if m.Victory.Has(victory.Objective) && !names[m.Objective] {
			errs = append(errs, fmt.Errorf("mode %s: objective planet %q not on map", name, m.Objective))
		}
	}
	return errors.Join(errs...)
}

// Mode looks up a game mode by name.
func (b *Balance) Mode(name string) (Mode, error) {
	m, ok := b.Modes[name]
	if !ok {
		return Mode{}, fmt.Errorf("unknown mode %q", name)
	}
	return m, nil
}

// Personality looks up an AI personality by name, falling back to the
// built-in balanced doctrine for "balanced".
func (b *Balance) Personality(name string) (rules.Doctrine, error) {
	d, ok := b.Personalities[name]
	if !ok {
		if name == rules.DefaultDoctrine().Name {
			return rules.DefaultDoctrine(), nil
		}
		return rules.Doctrine{}, fmt.Errorf("unknown personality %q", name)
	}
	if d.Name == "" {
		d.Name = name
	}
	d.Validate()
	return d, nil
}

// AIParams maps the constants onto the AI engine's parameters.
func (c Constants) AIParams() rules.Params {
	return rules.Params{
		MinAttackForce: c.MinAttackForce,
		Buffer:         c.AIBuffer,
		MaxBuildings:   c.MaxPerPlanet,
		ScarceBelow:    c.ScarceBelow,
		ScarcityBoost:  c.ScarcityBoost,
	}
}
