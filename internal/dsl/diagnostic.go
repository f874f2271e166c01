package dsl

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Severity classifies a Diagnostic. Error diagnostics are fatal: the
// formula must not be evaluated while any are present. Warning and Info
// are advisory and do not block evaluation.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Stable validator rule codes (spec §4.3). These are the public,
// testable identifiers a caller matches on; never rename one.
const (
	RuleRetroLuminary       = "V-RETRO-LUMINARY"
	RuleRetroAngle          = "V-RETRO-ANGLE"
	RuleAspectSelf          = "V-ASP-SELF"
	RuleHouseRange          = "V-HOUSE-RANGE"
	RuleDegreeRange         = "V-DEGREE-RANGE"
	RuleRulerMisuse         = "V-RULER-MISUSE"
	RuleDignitySignMismatch = "V-DIGNITY-SIGN-MISMATCH"
	RuleDignityConflict     = "V-DIGNITY-CONFLICT"
	RuleModeMismatch        = "V-MODE-MISMATCH"
	RuleOrbLarge            = "V-ORB-LARGE"
	RuleType                = "V-TYPE"
)

// Diagnostic is a single validator finding. MessageKey and Bindings
// exist so a surrounding catalog can render localized text; Message is
// the core's own English rendering, used when no catalog is present.
type Diagnostic struct {
	Severity    Severity
	Code        string
	MessageKey  string
	Message     string
	Bindings    map[string]string
	Suggestions []string
	Pos         Position
}

func (d Diagnostic) String() string {
	if len(d.Suggestions) > 0 {
		return fmt.Sprintf("%s: %s\n  Suggestions: %s", d.Code, d.Message, joinSuggestions(d.Suggestions))
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

func joinSuggestions(s []string) string {
	out := ""
	for i, v := range s {
		if i > 0 {
			out += "; "
		}
		out += v
	}
	return out
}

// Diagnostics is a collected set of validator findings for one AST.
type Diagnostics struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.items = append(d.items, diag)
}

// All returns every diagnostic recorded, in emission order.
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	for _, it := range d.items {
		if it.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the Error-severity diagnostics.
func (d *Diagnostics) Errors() []Diagnostic {
	var out []Diagnostic
	for _, it := range d.items {
		if it.Severity == SeverityError {
			out = append(out, it)
		}
	}
	return out
}

// Summary renders a human-friendly one-line count, e.g. "3 diagnostics
// (1 error, 2 warnings)", for display above a diagnostics listing.
func (d *Diagnostics) Summary() string {
	errs := len(d.Errors())
	total := len(d.items)
	warns := total - errs
	return fmt.Sprintf("%s (%s, %s)",
		english.Plural(total, "diagnostic", "diagnostics"),
		english.Plural(errs, "error", "errors"),
		english.Plural(warns, "warning", "warnings"),
	)
}

// ordinalHouse renders a house number as an ordinal, e.g. 10 -> "10th",
// for use in suggestion text ("expected a house between 1st and 12th").
func ordinalHouse(n int) string {
	return humanize.Ordinal(n)
}
