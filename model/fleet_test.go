package model

import (
	"testing"
	"time"
)

func TestMovementCost(t *testing.T) {
	tests := []struct {
		ships    int
		distance float64
		want     int
	}{
		{10, 100, 20}, // ceil(15 + 5)
		{1, 0, 2},     // ceil(1.5)
		{3, 250, 9},   // ceil(4.5 + 3.75) = ceil(8.25)
		{0, 500, 0},
	}
	for _, tc := range tests {
		got := MovementCost(tc.ships, tc.distance, 1.5, 0.005)
		if got != tc.want {
			t.Errorf("MovementCost(%d, %.0f) = %d, want %d", tc.ships, tc.distance, got, tc.want)
		}
	}
}

func TestFleetAdvance(t *testing.T) {
	origin := NewPlanet(0, PlanetSpec{Position: Vec2{X: 0, Y: 0}, Capacity: 10})
	dest := NewPlanet(1, PlanetSpec{Position: Vec2{X: 300, Y: 400}, Capacity: 10})
	f := NewFleet(7, origin, dest, 4, Player, time.Second, 100)

	if f.TravelTime() != 5*time.Second {
		t.Fatalf("travel time = %v, want 5s", f.TravelTime())
	}
	if f.Advance(3500 * time.Millisecond) {
		t.Fatal("fleet arrived halfway")
	}
	if pos := f.Position(); pos.X != 150 || pos.Y != 200 {
		t.Errorf("position = %+v, want (150, 200)", pos)
	}
	if !f.Advance(6 * time.Second) {
		t.Fatal("fleet did not arrive on time")
	}
	if f.Advance(7 * time.Second) {
		t.Error("arrival reported twice")
	}
	snap := f.Snapshot()
	if snap.ShipCount != 4 || snap.Owner != Player || snap.Progress != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}
