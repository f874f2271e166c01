// File: batch.go
// Purpose: concurrent pairwise aspect computation across a planet set.
// Pattern: fan-out over independent pairs, grounded on
// laureano57-astroeph-api's AspectCalculator.CalculateAspects (a serial
// double loop over all planet pairs); here each pair's orb/applying
// determination is independent so it runs on its own goroutine.
// Dependencies: golang.org/x/sync/errgroup

package chart

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// AspectOrbs maps an aspect kind to its exact angular distance and
// maximum allowed orb, e.g. {"Trine": {120, 7}}.
type AspectOrbs map[string]struct {
	Degrees float64
	MaxOrb  float64
}

// PlanetPosition is the minimal per-planet input CalculateAspects needs.
type PlanetPosition struct {
	Name      string
	Longitude float64
	Speed     float64
}

// CalculateAspects computes every pairwise aspect among planets whose
// circular degree distance falls within orb of a configured aspect
// kind's exact angle. Pairs are evaluated concurrently via errgroup;
// results are assembled from a fixed-size slot so output order is
// deterministic regardless of goroutine completion order.
func CalculateAspects(ctx context.Context, planets []PlanetPosition, orbs AspectOrbs) ([]AspectEntry, error) {
	type slot struct {
		entry AspectEntry
		ok    bool
	}

	pairs := make([][2]int, 0, len(planets)*(len(planets)-1)/2)
	for i := range planets {
		for j := i + 1; j < len(planets); j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}

	results := make([]slot, len(pairs))
	g, ctx := errgroup.WithContext(ctx)

	for idx, pair := range pairs {
		idx, pair := idx, pair
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			p1, p2 := planets[pair[0]], planets[pair[1]]
			entry, ok := pairAspect(p1, p2, orbs)
			results[idx] = slot{entry: entry, ok: ok}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]AspectEntry, 0, len(pairs))
	for _, r := range results {
		if r.ok {
			out = append(out, r.entry)
		}
	}
	return out, nil
}

func pairAspect(p1, p2 PlanetPosition, orbs AspectOrbs) (AspectEntry, bool) {
	delta := CircularDelta(p1.Longitude, p2.Longitude)

	var best AspectEntry
	found := false
	bestOrb := 0.0

	for kind, def := range orbs {
		diff := delta - def.Degrees
		if diff < 0 {
			diff = -diff
		}
		if diff > def.MaxOrb {
			continue
		}
		if !found || diff < bestOrb {
			best = AspectEntry{
				P1:       p1.Name,
				P2:       p2.Name,
				Kind:     kind,
				Orb:      diff,
				Applying: isApplying(p1, p2),
			}
			bestOrb = diff
			found = true
		}
	}
	return best, found
}

// isApplying reports whether the shorter-arc separation between the two
// bodies is shrinking given their relative speeds. It does not compare
// that separation with the aspect's exact angle.
func isApplying(p1, p2 PlanetPosition) bool {
	relativeSpeed := p1.Speed - p2.Speed
	// p2 leads p1 along the shorter arc when the forward distance from
	// p1 to p2 is under 180 degrees.
	if math.Mod(p2.Longitude-p1.Longitude+360, 360) < 180 {
		return relativeSpeed > 0
	}
	return relativeSpeed < 0
}
