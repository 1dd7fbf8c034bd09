// Package building runs the per-planet construction queue and applies the
// modifiers of completed buildings to their planet.
package building

import (
	"time"

	"github.com/nstehr/starfall/starfall-core/economy"
	"github.com/nstehr/starfall/starfall-core/model"
)

// ID names a building in the catalog.
type ID string

// Definition is a catalog entry.
type Definition struct {
	ID        ID            `yaml:"id"`
	Name      string        `yaml:"name"`
	Cost      economy.Cost  `yaml:"cost"`
	BuildTime time.Duration `yaml:"build_time"`
	Effect    model.Effect  `yaml:"effect"`
	MaxLevel  int           `yaml:"max_level"`
	// Priority is the AI's base preference for this building.
	Priority float64 `yaml:"priority"`
}

// Resource reports which stockpile the building's effect feeds, if any.
func (d Definition) Resource() string {
	switch d.Effect.Type {
	case model.EffectMetalRate:
		return "metal"
	case model.EffectEnergyRate:
		return "energy"
	}
	return ""
}

// Record is one building instance on a planet.
type Record struct {
	Building     ID
	Constructing bool
	Progress     float64 // 0..100
	Start        time.Duration
	Level        int
}

// ApplyEffects adds d's modifier to p once per level.
func ApplyEffects(p *model.Planet, d Definition, level int) {
	for i := 0; i < level; i++ {
		p.ApplyEffect(d.Effect)
	}
}

// RemoveEffects undoes ApplyEffects exactly.
func RemoveEffects(p *model.Planet, d Definition, level int) {
	for i := 0; i < level; i++ {
		p.RemoveEffect(d.Effect)
	}
}
