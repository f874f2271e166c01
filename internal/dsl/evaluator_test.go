package dsl

import (
	"testing"

	"github.com/astroformula/dsl/internal/chart"
	"github.com/astroformula/dsl/internal/dignity"
)

func testChart() *chart.Chart {
	c := chart.New(chart.Traditional)
	c.Planets = map[string]chart.PlanetState{
		"Sun":     {Longitude: 10, Sign: "Aries", House: 1, DegreeInSign: 10, Dignity: chart.DignityRulership},
		"Moon":    {Longitude: 100, Sign: "Cancer", House: 4, DegreeInSign: 10, Dignity: chart.DignityRulership},
		"Mercury": {Longitude: 15, Sign: "Aries", House: 1, DegreeInSign: 15},
		"Venus":   {Longitude: 190, Sign: "Libra", House: 7, DegreeInSign: 10, Retrograde: true, Speed: -0.5},
		"Mars":    {Longitude: 280, Sign: "Capricorn", House: 10, DegreeInSign: 10},
	}
	c.Aspects = []chart.AspectEntry{
		{P1: "Sun", P2: "Mercury", Kind: "Conj", Orb: 5, Applying: true},
		{P1: "Moon", P2: "Mars", Kind: "Square", Orb: 4},
	}
	return c
}

func evalFormula(t *testing.T, formula string, c *chart.Chart) bool {
	t.Helper()
	cfg := dignity.Default()
	node, diags, err := ValidateFormula(formula, cfg)
	if err != nil {
		t.Fatalf("ValidateFormula(%q) error = %v", formula, err)
	}
	for _, d := range diags {
		if d.Severity == SeverityError {
			t.Fatalf("ValidateFormula(%q) unexpected error diagnostic: %+v", formula, d)
		}
	}
	v, err := NewEvaluator(c, cfg).Eval(node)
	if err != nil {
		t.Fatalf("Eval(%q) error = %v", formula, err)
	}
	if !v.IsBool() {
		t.Fatalf("Eval(%q) did not produce a boolean", formula)
	}
	return v.Bool
}

func TestEvaluateComparisons(t *testing.T) {
	c := testChart()
	tests := []struct {
		formula string
		want    bool
	}{
		{"Sun.Sign == Aries", true},
		{"Sun.Sign == Leo", false},
		{"Sun.House == 1", true},
		{"Venus.Retrograde == true", true},
		{"Mars.Retrograde == false", true},
		{"Sun.Degree < 15", true},
		{"Sun.Sign IN [Aries, Leo]", true},
		{"Sun.Sign IN [Leo, Scorpio]", false},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			if got := evalFormula(t, tt.formula, c); got != tt.want {
				t.Errorf("evaluate(%q) = %v, want %v", tt.formula, got, tt.want)
			}
		})
	}
}

func TestEvaluateBoolOps(t *testing.T) {
	c := testChart()
	tests := []struct {
		formula string
		want    bool
	}{
		{"Sun.Sign == Aries AND Moon.Sign == Cancer", true},
		{"Sun.Sign == Aries AND Moon.Sign == Leo", false},
		{"Sun.Sign == Leo OR Moon.Sign == Cancer", true},
		{"NOT Sun.Sign == Leo", true},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			if got := evalFormula(t, tt.formula, c); got != tt.want {
				t.Errorf("evaluate(%q) = %v, want %v", tt.formula, got, tt.want)
			}
		})
	}
}

func TestEvaluateAspectCall(t *testing.T) {
	c := testChart()
	if !evalFormula(t, "Asp(Sun, Mercury, Conj) == true", c) {
		t.Error("expected Sun-Mercury conjunction to be found")
	}
	if !evalFormula(t, "Asp(Mercury, Sun, Conj) == true", c) {
		t.Error("Asp must be symmetric in argument order")
	}
	if evalFormula(t, "Asp(Sun, Venus, Conj) == true", c) {
		t.Error("did not expect a Sun-Venus conjunction")
	}
}

func TestEvaluateAggregatorAny(t *testing.T) {
	c := testChart()
	if !evalFormula(t, "any(planet WHERE Sign == Aries).House == 1", c) {
		t.Error("expected any() to find a planet in Aries in house 1")
	}
	if evalFormula(t, "any(planet WHERE Sign == Pisces).House == 1", c) {
		t.Error("did not expect any planet in Pisces")
	}
}

func TestEvaluateAggregatorAllVacuous(t *testing.T) {
	c := testChart()
	// No planet is in Pisces, so all() over that filter is vacuously true.
	if !evalFormula(t, "all(planet WHERE Sign == Pisces).Retrograde == true", c) {
		t.Error("expected all() over an empty filtered domain to be vacuously true")
	}
}

func TestEvaluateCount(t *testing.T) {
	c := testChart()
	if !evalFormula(t, "count(planet, Sign == Aries) == 2", c) {
		t.Error("expected exactly two planets in Aries")
	}
}

// TestEvaluateAggregatorDuality checks all(D).P == NOT any(D).(NOT P).
func TestEvaluateAggregatorDuality(t *testing.T) {
	c := testChart()
	all := evalFormula(t, "all(planet).Retrograde == false", c)
	dual := evalFormula(t, "NOT any(planet).Retrograde == true", c)
	if all != dual {
		t.Errorf("aggregator duality violated: all() = %v, NOT any() = %v", all, dual)
	}
}

func TestEvaluateShortCircuitAnd(t *testing.T) {
	c := testChart()
	cfg := dignity.Default()
	// Sun is never retrograde (chart invariant), so the left side of AND
	// is false; the right side names a planet absent from the chart and
	// would error if evaluated, proving AND short-circuited.
	node, diags, err := ValidateFormula("Sun.Retrograde == true AND Neptune.Sign == Aries", cfg)
	if err != nil {
		t.Fatalf("ValidateFormula error = %v", err)
	}
	_ = diags
	v, err := NewEvaluator(c, cfg).Eval(node)
	if err != nil {
		t.Fatalf("AND did not short-circuit; evaluating the right side errored: %v", err)
	}
	if v.Bool {
		t.Error("expected false")
	}
}

func TestEvaluateShortCircuitOr(t *testing.T) {
	c := testChart()
	cfg := dignity.Default()
	node, _, err := ValidateFormula("Sun.Sign == Aries OR Neptune.Sign == Aries", cfg)
	if err != nil {
		t.Fatalf("ValidateFormula error = %v", err)
	}
	v, err := NewEvaluator(c, cfg).Eval(node)
	if err != nil {
		t.Fatalf("OR did not short-circuit; evaluating the right side errored: %v", err)
	}
	if !v.Bool {
		t.Error("expected true")
	}
}

func TestEvaluateShortCircuitAny(t *testing.T) {
	c := testChart()
	cfg := dignity.Default()
	node, _, err := ValidateFormula("any(planet WHERE Sign == Aries).Sign == Aries", cfg)
	if err != nil {
		t.Fatalf("ValidateFormula error = %v", err)
	}
	v, err := NewEvaluator(c, cfg).Eval(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Bool {
		t.Error("expected true")
	}
}

func TestEvaluateCircularDegreeMetric(t *testing.T) {
	tests := []struct {
		a, b float64
		want float64
	}{
		{10, 20, 10},
		{350, 10, 20},
		{0, 180, 180},
		{5, 355, 10},
	}
	for _, tt := range tests {
		if got := chart.CircularDelta(tt.a, tt.b); got != tt.want {
			t.Errorf("CircularDelta(%g, %g) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}
