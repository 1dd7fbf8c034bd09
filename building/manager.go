package building

import (
	"log/slog"
	"math"
	"time"

	"github.com/nstehr/starfall/starfall-core/economy"
	"github.com/nstehr/starfall/starfall-core/model"
)

// Completion reports a building that finished during UpdateConstructions.
type Completion struct {
	Planet   model.PlanetID
	Owner    model.Faction
	Building ID
}

// Manager owns every planet's building records. Costs are debited when
// construction starts; effects are applied when it completes.
type Manager struct {
	defs         map[ID]Definition
	order        []ID
	ledger       *economy.Ledger
	maxPerPlanet int
	refundRate   float64
	records      map[model.PlanetID][]*Record
}

// NewManager builds a manager over the given catalog.
func NewManager(catalog []Definition, ledger *economy.Ledger, maxPerPlanet int, refundRate float64) *Manager {
	m := &Manager{
		defs:         make(map[ID]Definition, len(catalog)),
		ledger:       ledger,
		maxPerPlanet: maxPerPlanet,
		refundRate:   refundRate,
		records:      make(map[model.PlanetID][]*Record),
	}
	for _, d := range catalog {
		if d.MaxLevel <= 0 {
			d.MaxLevel = 1
		}
		if _, dup := m.defs[d.ID]; !dup {
			m.order = append(m.order, d.ID)
		}
		m.defs[d.ID] = d
	}
	return m
}

// Definition looks up a catalog entry.
func (m *Manager) Definition(id ID) (Definition, bool) {
	d, ok := m.defs[id]
	return d, ok
}

// Catalog returns the definitions in catalog order.
func (m *Manager) Catalog() []Definition {
	out := make([]Definition, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.defs[id])
	}
	return out
}

// RefundRate is the share of cost returned on cancel.
func (m *Manager) RefundRate() float64 { return m.refundRate }

// Records returns copies of the planet's building records.
func (m *Manager) Records(pid model.PlanetID) []Record {
	recs := m.records[pid]
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = *r
	}
	return out
}

// Has reports whether the planet has a record for id.
func (m *Manager) Has(pid model.PlanetID, id ID) bool {
	return m.find(pid, id) >= 0
}

// FreeSlots is the number of buildings the planet can still take.
func (m *Manager) FreeSlots(pid model.PlanetID) int {
	return max(0, m.maxPerPlanet-len(m.records[pid]))
}

func (m *Manager) find(pid model.PlanetID, id ID) int {
	for i, r := range m.records[pid] {
		if r.Building == id {
			return i
		}
	}
	return -1
}

// CanStart validates a construction without changing anything.
func (m *Manager) CanStart(p *model.Planet, by model.Faction, id ID) error {
	if !p.OwnedBy(by) {
		return model.Reject(model.CodeNotOwner, "planet %d is not owned by %s", p.ID(), by)
	}
	d, ok := m.defs[id]
	if !ok {
		return model.Reject(model.CodeUnknownBuilding, "unknown building %q", id)
	}
	if m.Has(p.ID(), id) {
		return model.Reject(model.CodeDuplicateBuilding, "planet %d already has %s", p.ID(), id)
	}
	if m.FreeSlots(p.ID()) == 0 {
		return model.Reject(model.CodeNoFreeSlot, "planet %d has no free building slot", p.ID())
	}
	if !m.ledger.CanAfford(by, d.Cost) {
		return model.Reject(model.CodeInsufficientResources,
			"%s needs %.0f metal %.0f energy", id, d.Cost.Metal, d.Cost.Energy)
	}
	return nil
}

// StartConstruction debits the cost and queues the building. Nothing
// changes when it returns an error.
func (m *Manager) StartConstruction(p *model.Planet, by model.Faction, id ID, now time.Duration) error {
	if err := m.CanStart(p, by, id); err != nil {
		return err
	}
	d := m.defs[id]
	if !m.ledger.Spend(by, d.Cost) {
		return model.Reject(model.CodeInsufficientResources, "cannot pay for %s", id)
	}
	model.Invariant(!m.Has(p.ID(), id), "duplicate building record %s on planet %d", id, p.ID())
	m.records[p.ID()] = append(m.records[p.ID()], &Record{
		Building:     id,
		Constructing: true,
		Start:        now,
	})
	slog.Debug("construction started", "planet", p.ID(), "building", id, "faction", by)
	return nil
}

// CancelConstruction drops an in-progress record and refunds RefundRate of
// its cost through the capped ledger path. It returns what was credited.
func (m *Manager) CancelConstruction(p *model.Planet, by model.Faction, id ID) (economy.Cost, error) {
	if !p.OwnedBy(by) {
		return economy.Cost{}, model.Reject(model.CodeNotOwner, "planet %d is not owned by %s", p.ID(), by)
	}
	i := m.find(p.ID(), id)
	if i < 0 || !m.records[p.ID()][i].Constructing {
		return economy.Cost{}, model.Reject(model.CodeNotConstructing, "%s is not under construction on planet %d", id, p.ID())
	}
	m.drop(p.ID(), i)
	refund := m.ledger.Refund(by, m.defs[id].Cost, m.refundRate)
	slog.Debug("construction cancelled", "planet", p.ID(), "building", id, "refund_metal", refund.Metal, "refund_energy", refund.Energy)
	return refund, nil
}

func (m *Manager) drop(pid model.PlanetID, i int) {
	recs := m.records[pid]
	recs = append(recs[:i], recs[i+1:]...)
	if len(recs) == 0 {
		delete(m.records, pid)
		return
	}
	m.records[pid] = recs
}

// UpdateConstructions advances every in-progress record to now and applies
// the effect of each one that reaches 100%. Completed records are never
// touched again, so calling it twice with the same now is a no-op.
func (m *Manager) UpdateConstructions(now time.Duration, planets []*model.Planet) []Completion {
	var done []Completion
	for _, p := range planets {
		for _, r := range m.records[p.ID()] {
			if !r.Constructing {
				continue
			}
			d := m.defs[r.Building]
			r.Progress = progress(now-r.Start, d.BuildTime)
			if r.Progress < 100 {
				continue
			}
			r.Constructing = false
			r.Level = 1
			ApplyEffects(p, d, r.Level)
			done = append(done, Completion{Planet: p.ID(), Owner: p.Owner(), Building: r.Building})
		}
	}
	return done
}

func progress(elapsed, buildTime time.Duration) float64 {
	if buildTime <= 0 {
		return 100
	}
	return math.Max(0, math.Min(100, float64(elapsed)/float64(buildTime)*100))
}

// ResetPlanet removes the effects of completed buildings and drops every
// record on p. Used when the planet changes hands.
func (m *Manager) ResetPlanet(p *model.Planet) int {
	recs := m.records[p.ID()]
	for _, r := range recs {
		if !r.Constructing {
			RemoveEffects(p, m.defs[r.Building], r.Level)
		}
	}
	delete(m.records, p.ID())
	return len(recs)
}

// Snapshot returns the planet's buildings for renderers.
func (m *Manager) Snapshot(pid model.PlanetID) []model.BuildingSnapshot {
	recs := m.records[pid]
	if len(recs) == 0 {
		return nil
	}
	out := make([]model.BuildingSnapshot, len(recs))
	for i, r := range recs {
		out[i] = model.BuildingSnapshot{
			ID:           string(r.Building),
			Constructing: r.Constructing,
			Progress:     r.Progress,
			Level:        r.Level,
		}
	}
	return out
}
