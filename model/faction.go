package model

import (
	"fmt"
	"strings"
)

// Faction is the controller of a planet or fleet.
type Faction uint8

const (
	Neutral Faction = iota
	Player
	AI
)

// Factions lists the two factions that own resources and issue commands.
var Factions = []Faction{Player, AI}

func (f Faction) String() string {
	switch f {
	case Player:
		return "player"
	case AI:
		return "ai"
	default:
		return "neutral"
	}
}

// Opponent returns the other playing faction. Neutral has no opponent.
func (f Faction) Opponent() Faction {
	switch f {
	case Player:
		return AI
	case AI:
		return Player
	default:
		return Neutral
	}
}

// Playing reports whether f is one of the two commanding factions.
func (f Faction) Playing() bool { return f == Player || f == AI }

// ParseFaction accepts the lowercase names produced by String.
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "neutral", "":
		return Neutral, nil
	case "player":
		return Player, nil
	case "ai":
		return AI, nil
	}
	return Neutral, fmt.Errorf("unknown faction %q", s)
}

func (f Faction) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Faction) UnmarshalText(b []byte) error {
	v, err := ParseFaction(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
