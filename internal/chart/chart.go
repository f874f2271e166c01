// Package chart defines the read-only natal chart consumed by the
// formula evaluator. Values here are produced by an external ephemeris
// computation; the package itself performs no astronomical calculation.
package chart

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Mode selects which rulership table the chart's consumers use.
type Mode string

const (
	Traditional Mode = "traditional"
	Modern      Mode = "modern"
)

// Dignity mirrors dsl.DignityKind without importing the dsl package,
// keeping chart free of any formula-language dependency.
type Dignity string

const (
	DignityRulership  Dignity = "Rulership"
	DignityExaltation Dignity = "Exaltation"
	DignityDetriment  Dignity = "Detriment"
	DignityFall       Dignity = "Fall"
	DignityNeutral    Dignity = "Neutral"
	DignityPeregrine  Dignity = "Peregrine"
)

// PlanetState is the computed position and condition of a single body.
type PlanetState struct {
	Longitude    float64 `json:"longitude"`      // degrees, [0, 360)
	Sign         string  `json:"sign"`           // canonical sign name, e.g. "Aries"
	House        int     `json:"house"`          // 1..12
	DegreeInSign float64 `json:"degree_in_sign"` // [0, 30)
	Retrograde   bool    `json:"retrograde"`
	Speed        float64 `json:"speed"` // degrees/day; negative is retrograde motion
	Dignity      Dignity `json:"dignity"`
}

// AspectEntry is one angular relationship already computed between two
// bodies at chart construction time; the evaluator does not compute new
// aspects, it only searches this list.
type AspectEntry struct {
	P1       string  `json:"p1"`
	P2       string  `json:"p2"`
	Kind     string  `json:"kind"` // e.g. "Conj", "Trine" - matches dsl.AspectKind's string value
	Orb      float64 `json:"orb"`
	Applying bool    `json:"applying"`
}

// Chart is the immutable input to formula evaluation. It must not be
// mutated while any evaluation reads it (spec's concurrency model).
type Chart struct {
	ID      string                 `json:"id"` // correlation ID, stamped by New if left blank
	Planets map[string]PlanetState `json:"planets"`
	Houses  [12]float64            `json:"houses"` // cusp longitudes, index 0 = house 1
	Aspects []AspectEntry          `json:"aspects"`
	Mode    Mode                   `json:"mode"`
}

// New returns an empty Chart stamped with a fresh correlation ID, ready
// for a caller to populate Planets/Houses/Aspects before evaluation.
func New(mode Mode) *Chart {
	return &Chart{
		ID:      uuid.NewString(),
		Planets: make(map[string]PlanetState),
		Mode:    mode,
	}
}

// Planet looks up a planet by canonical name.
func (c *Chart) Planet(name string) (PlanetState, bool) {
	p, ok := c.Planets[name]
	return p, ok
}

// PlanetNames returns the domain enumerated by `planet`/`planets`, in a
// stable order (classical ten, then any configured extended bodies in
// alphabetical order).
func (c *Chart) PlanetNames() []string {
	names := make([]string, 0, len(c.Planets))
	for _, n := range classicalOrder {
		if _, ok := c.Planets[n]; ok {
			names = append(names, n)
		}
	}
	var extended []string
	for n := range c.Planets {
		if !containsString(classicalOrder, n) {
			extended = append(extended, n)
		}
	}
	sort.Strings(extended)
	return append(names, extended...)
}

var classicalOrder = []string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// PlanetsInSign returns the canonical planet names posited in sign.
func (c *Chart) PlanetsInSign(sign string) []string {
	var names []string
	for _, n := range c.PlanetNames() {
		if c.Planets[n].Sign == sign {
			names = append(names, n)
		}
	}
	return names
}

// PlanetsInHouse returns the canonical planet names posited in house.
func (c *Chart) PlanetsInHouse(house int) []string {
	var names []string
	for _, n := range c.PlanetNames() {
		if c.Planets[n].House == house {
			names = append(names, n)
		}
	}
	return names
}

// Validate checks the invariants a chart producer must uphold; the
// evaluator assumes a Chart passed to it already satisfies these, but
// callers assembling a Chart from external data should check first.
func (c *Chart) Validate() error {
	if sun, ok := c.Planets["Sun"]; ok && sun.Retrograde {
		return fmt.Errorf("chart: Sun must never be retrograde")
	}
	if moon, ok := c.Planets["Moon"]; ok && moon.Retrograde {
		return fmt.Errorf("chart: Moon must never be retrograde")
	}
	for name, p := range c.Planets {
		if p.Longitude < 0 || p.Longitude >= 360 {
			return fmt.Errorf("chart: %s longitude %g out of range [0,360)", name, p.Longitude)
		}
		if p.House < 1 || p.House > 12 {
			return fmt.Errorf("chart: %s house %d out of range 1..12", name, p.House)
		}
	}
	return nil
}

// CircularDelta returns the shortest angular distance between two
// longitudes on the 360-degree circle, per spec's aspect orb metric.
func CircularDelta(a, b float64) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d > 360-d {
		return 360 - d
	}
	return d
}
