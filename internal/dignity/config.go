// Package dignity loads the planet/sign essential-dignity tables the
// validator and evaluator both read: rulerships, exaltations,
// detriments and falls, under either a traditional or modern scheme.
package dignity

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects which rulership table is authoritative.
type Mode string

const (
	Traditional Mode = "traditional"
	Modern      Mode = "modern"
)

// ModernRulers are the three outer planets that only co-rule under
// Modern mode; referencing them under Traditional raises V-MODE-MISMATCH.
var ModernRulers = map[string]bool{
	"Uranus": true, "Neptune": true, "Pluto": true,
}

// Config is the immutable, process-wide dignity table. Once built it is
// never mutated; concurrent evaluations may share one instance freely.
type Config struct {
	Mode        Mode                `yaml:"mode"`
	Rulers      map[string][]string `yaml:"rulers"`      // sign -> planet(s)
	Exaltations map[string]string   `yaml:"exaltations"` // planet -> sign
	Detriments  map[string][]string `yaml:"detriments"`  // planet -> sign(s)
	Falls       map[string]string   `yaml:"falls"`       // planet -> sign
}

// Default returns the standard traditional-plus-modern table used when
// no external configuration document is supplied.
func Default() *Config {
	return &Config{
		Mode: Traditional,
		Rulers: map[string][]string{
			"Aries": {"Mars"}, "Taurus": {"Venus"}, "Gemini": {"Mercury"},
			"Cancer": {"Moon"}, "Leo": {"Sun"}, "Virgo": {"Mercury"},
			"Libra": {"Venus"}, "Scorpio": {"Mars", "Pluto"},
			"Sagittarius": {"Jupiter"}, "Capricorn": {"Saturn"},
			"Aquarius": {"Saturn", "Uranus"}, "Pisces": {"Jupiter", "Neptune"},
		},
		Exaltations: map[string]string{
			"Sun": "Aries", "Moon": "Taurus", "Mercury": "Virgo",
			"Venus": "Pisces", "Mars": "Capricorn", "Jupiter": "Cancer",
			"Saturn": "Libra", "Uranus": "Scorpio", "Neptune": "Leo", "Pluto": "Aries",
		},
		Detriments: map[string][]string{
			"Sun": {"Aquarius"}, "Moon": {"Capricorn"}, "Mercury": {"Sagittarius", "Pisces"},
			"Venus": {"Aries", "Scorpio"}, "Mars": {"Libra", "Taurus"},
			"Jupiter": {"Gemini", "Virgo"}, "Saturn": {"Cancer", "Leo"},
			"Uranus": {"Leo"}, "Neptune": {"Virgo"}, "Pluto": {"Taurus", "Libra"},
		},
		Falls: map[string]string{
			"Sun": "Libra", "Moon": "Scorpio", "Mercury": "Pisces",
			"Venus": "Virgo", "Mars": "Cancer", "Jupiter": "Capricorn",
			"Saturn": "Aries", "Uranus": "Taurus", "Neptune": "Aquarius", "Pluto": "Libra",
		},
	}
}

// Load reads a Config from a YAML document. Rulers/Exaltations/
// Detriments/Falls entries not present in the document fall back to
// Default()'s entries for that key, so partial override documents work.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	var override Config
	if err := dec.Decode(&override); err != nil {
		if err == io.EOF {
			return cfg, nil
		}
		return nil, fmt.Errorf("dignity: decode config: %w", err)
	}
	if override.Mode != "" {
		cfg.Mode = override.Mode
	}
	for k, v := range override.Rulers {
		cfg.Rulers[k] = v
	}
	for k, v := range override.Exaltations {
		cfg.Exaltations[k] = v
	}
	for k, v := range override.Detriments {
		cfg.Detriments[k] = v
	}
	for k, v := range override.Falls {
		cfg.Falls[k] = v
	}
	return cfg, nil
}

// LoadFile opens path and loads a Config from it.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dignity: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// RulersOf returns the ruler(s) of sign under the Config's active mode.
// Under Traditional mode the modern co-rulers are excluded even if
// present in the table.
func (c *Config) RulersOf(sign string) []string {
	all := c.Rulers[sign]
	if c.Mode == Modern {
		return all
	}
	var out []string
	for _, p := range all {
		if !ModernRulers[p] {
			out = append(out, p)
		}
	}
	return out
}

// IsRuler reports whether planet rules sign under the active mode.
func (c *Config) IsRuler(planet, sign string) bool {
	for _, p := range c.RulersOf(sign) {
		if p == planet {
			return true
		}
	}
	return false
}

// ExaltationSign returns the sign planet is exalted in, if any.
func (c *Config) ExaltationSign(planet string) (string, bool) {
	s, ok := c.Exaltations[planet]
	return s, ok
}

// FallSign returns the sign planet is in its fall in, if any.
func (c *Config) FallSign(planet string) (string, bool) {
	s, ok := c.Falls[planet]
	return s, ok
}

// IsDetriment reports whether planet is in detriment in sign.
func (c *Config) IsDetriment(planet, sign string) bool {
	for _, s := range c.Detriments[planet] {
		if s == sign {
			return true
		}
	}
	return false
}

// Dignity computes the dignity of planet when posited in sign.
func (c *Config) Dignity(planet, sign string) string {
	switch {
	case c.IsRuler(planet, sign):
		return "Rulership"
	case func() bool { s, ok := c.ExaltationSign(planet); return ok && s == sign }():
		return "Exaltation"
	case c.IsDetriment(planet, sign):
		return "Detriment"
	case func() bool { s, ok := c.FallSign(planet); return ok && s == sign }():
		return "Fall"
	default:
		// No essential dignity applies; "Peregrine" rather than
		// "Neutral" matches the grounding source's domicile/exalt/
		// detriment/fall/none classification (Neutral is reserved
		// for callers that want to downgrade Peregrine for planets
		// with partial dignities such as triplicity, not modeled here).
		return "Peregrine"
	}
}
