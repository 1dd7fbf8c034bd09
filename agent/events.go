package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/nstehr/starfall/starfall-core/ipc"
	"github.com/nstehr/starfall/starfall-core/model"
)

// planetNames resolves planet ids for announcements. Unknown ids fall back
// to "planet N".
type planetNames []string

func (n planetNames) name(id model.PlanetID) string {
	if id >= 0 && int(id) < len(n) && n[id] != "" {
		return n[id]
	}
	return fmt.Sprintf("planet %d", id)
}

// announce renders an event as one line a shell can show without knowing
// the event schema.
func announce(e model.Event, names planetNames) string {
	planet := names.name(e.Planet)
	switch e.Kind {
	case model.EventPlanetConquered:
		if e.Previous == model.Neutral {
			return fmt.Sprintf("%s claimed %s", e.Faction, planet)
		}
		return fmt.Sprintf("%s took %s from %s", e.Faction, planet, e.Previous)
	case model.EventFleetLaunched:
		return fmt.Sprintf("%s launched %.0f ships from %s to %s", e.Faction, e.Ships, planet, e.Detail)
	case model.EventFleetArrived:
		return fmt.Sprintf("%s fleet of %.0f reached %s (%s)", e.Faction, e.Ships, planet, e.Outcome)
	case model.EventConstructionStarted:
		return fmt.Sprintf("%s began building %s on %s", e.Faction, e.Building, planet)
	case model.EventConstructionCancelled:
		return fmt.Sprintf("%s cancelled %s on %s, %s", e.Faction, e.Building, planet, e.Detail)
	case model.EventBuildingCompleted:
		return fmt.Sprintf("%s finished %s on %s", e.Faction, e.Building, planet)
	case model.EventResourceInsufficient:
		what := e.Detail
		if what == "" {
			what = "resources"
		}
		return fmt.Sprintf("%s lacks %s at %s", e.Faction, what, planet)
	case model.EventVictoryReached:
		if e.Faction == model.Neutral {
			return fmt.Sprintf("draw by %s: %s", e.Condition, e.Detail)
		}
		return fmt.Sprintf("%s wins by %s: %s", e.Faction, e.Condition, e.Detail)
	}
	return string(e.Kind)
}

func eventEnvelope(e model.Event, names planetNames) (ipc.Envelope, error) {
	return ipc.NewEnvelope(ipc.TypeEvent, ipc.EventMessage{Event: e, Text: announce(e, names)})
}

// summarize is the one-line game status logged as play goes on.
func summarize(gs model.GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "t=%s", gs.Now.Truncate(100*time.Millisecond))
	for _, f := range model.Factions {
		res := gs.Resources[f]
		fmt.Fprintf(&b, " | %s: %d planets %.0f ships %.0fm/%.0fe",
			f, gs.PlanetCount(f), gs.ShipCount(f), res.Metal, res.Energy)
	}
	if left := gs.TimeRemaining(); left >= 0 {
		fmt.Fprintf(&b, " | %s left", left.Truncate(time.Second))
	}
	return b.String()
}
