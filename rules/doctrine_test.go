package rules

import (
	"testing"
	"time"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		min, max int
		t        float64
		want     int
	}{
		{5, 20, 0.0, 5},
		{5, 20, 1.0, 20},
		{5, 20, 0.5, 13}, // 5 + round(15*0.5) = 5 + 8 = 13
		{3, 1, 0.5, 2},
		{3000, 500, 0.5, 1750},
	}
	for _, tc := range tests {
		got := lerp(tc.min, tc.max, tc.t)
		if got != tc.want {
			t.Errorf("lerp(%d, %d, %.1f) = %d, want %d", tc.min, tc.max, tc.t, got, tc.want)
		}
	}
}

func TestLerpf(t *testing.T) {
	got := lerpf(0.0, 1.0, 0.5)
	if got != 0.5 {
		t.Errorf("lerpf(0, 1, 0.5) = %f, want 0.5", got)
	}
	got = lerpf(10.0, 20.0, 0.5)
	if got != 15.0 {
		t.Errorf("lerpf(10, 20, 0.5) = %f, want 15.0", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.5, 0, 1, 0.0},
		{1.5, 0, 1, 1.0},
	}
	for _, tc := range tests {
		got := clamp(tc.v, tc.min, tc.max)
		if got != tc.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tc.v, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	d := Doctrine{Aggression: 1.5, Expansion: -0.2, Defense: 0.3, RiskTaking: 2, Interval: 10 * time.Second}
	d.Validate()

	if d.Aggression != 1 || d.Expansion != 0 || d.Defense != 0.3 || d.RiskTaking != 1 {
		t.Errorf("weights = %+v, want clamped to [0, 1]", d)
	}
	if d.Interval != maxInterval {
		t.Errorf("Interval = %v, want %v", d.Interval, maxInterval)
	}
}

func TestDecisionInterval(t *testing.T) {
	tests := []struct {
		name string
		d    Doctrine
		want time.Duration
	}{
		{"passive", Doctrine{Aggression: 0}, 3 * time.Second},
		{"aggressive", Doctrine{Aggression: 1}, 500 * time.Millisecond},
		{"balanced", DefaultDoctrine(), 1750 * time.Millisecond},
		{"explicit", Doctrine{Interval: 2 * time.Second}, 2 * time.Second},
		{"explicit too fast", Doctrine{Interval: 100 * time.Millisecond}, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.DecisionInterval(); got != tt.want {
				t.Errorf("DecisionInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}
