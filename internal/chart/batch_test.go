package chart

import (
	"context"
	"testing"
)

func testOrbs() AspectOrbs {
	return AspectOrbs{
		"Conj":    {Degrees: 0, MaxOrb: 8},
		"Sextile": {Degrees: 60, MaxOrb: 6},
		"Square":  {Degrees: 90, MaxOrb: 7},
		"Trine":   {Degrees: 120, MaxOrb: 8},
		"Opp":     {Degrees: 180, MaxOrb: 8},
	}
}

func TestCalculateAspectsFindsTrine(t *testing.T) {
	planets := []PlanetPosition{
		{Name: "Sun", Longitude: 10},
		{Name: "Moon", Longitude: 130},
	}
	entries, err := CalculateAspects(context.Background(), planets, testOrbs())
	if err != nil {
		t.Fatalf("CalculateAspects error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	if entries[0].Kind != "Trine" {
		t.Errorf("Kind = %q, want Trine", entries[0].Kind)
	}
}

func TestCalculateAspectsNoneWithinOrb(t *testing.T) {
	planets := []PlanetPosition{
		{Name: "Sun", Longitude: 10},
		{Name: "Moon", Longitude: 55},
	}
	entries, err := CalculateAspects(context.Background(), planets, testOrbs())
	if err != nil {
		t.Fatalf("CalculateAspects error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0: %+v", len(entries), entries)
	}
}

func TestCalculateAspectsDeterministicOrder(t *testing.T) {
	planets := []PlanetPosition{
		{Name: "Sun", Longitude: 0},
		{Name: "Moon", Longitude: 90},
		{Name: "Mercury", Longitude: 180},
		{Name: "Venus", Longitude: 120},
	}
	first, err := CalculateAspects(context.Background(), planets, testOrbs())
	if err != nil {
		t.Fatalf("CalculateAspects error = %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := CalculateAspects(context.Background(), planets, testOrbs())
		if err != nil {
			t.Fatalf("CalculateAspects error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: got %d entries, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Errorf("run %d: entry %d = %+v, want %+v (non-deterministic pair order)", i, j, again[j], first[j])
			}
		}
	}
}

func TestCalculateAspectsRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	planets := []PlanetPosition{
		{Name: "Sun", Longitude: 0},
		{Name: "Moon", Longitude: 90},
	}
	if _, err := CalculateAspects(ctx, planets, testOrbs()); err == nil {
		t.Error("expected an error for an already-canceled context")
	}
}
